package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
)

// bulletList is the structured reply requested from OpenAI models.
type bulletList struct {
	Items []string `json:"items" jsonschema_description:"Bullet items in order, one short sentence each, no bullet markers"`
}

var bulletListSchema = generateSchema[bulletList]()

type openAIProvider struct {
	client      *openai.Client
	model       string
	temperature float64
	topP        float64
	maxTokens   int64
}

// NewOpenAIProvider creates a Provider on the OpenAI Responses API with a strict JSON schema.
// baseURL overrides the API endpoint when non-empty.
func NewOpenAIProvider(cfg config.SummarizerConfig, baseURL string) Provider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openAIProvider{
		client:      &client,
		model:       cfg.Model,
		temperature: float64(cfg.SamplingTemperature()),
		topP:        float64(cfg.SamplingTopP()),
		maxTokens:   int64(cfg.MaxTokens),
	}
}

func (p *openAIProvider) Name() string { return "openai:" + p.model }

// Complete requests the schema-constrained list and renders it back to "- " bullet lines.
func (p *openAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(p.maxTokens),
		Temperature:     openai.Float(p.temperature),
		TopP:            openai.Float(p.topP),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "BulletList",
					Schema:      bulletListSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Meeting bullet list"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}

	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return "", nil
	}

	var list bulletList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		// Hand the raw text to the bullet parser, which decides whether to re-prompt.
		return out, nil
	}

	items := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return RenderBullets(items), nil
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(fmt.Sprintf("unmarshal schema: %v", err))
	}
	m["additionalProperties"] = false
	if props, ok := m["properties"].(map[string]interface{}); ok {
		required := make([]string, 0, len(props))
		for name := range props {
			required = append(required, name)
		}
		m["required"] = required
	}
	return m
}
