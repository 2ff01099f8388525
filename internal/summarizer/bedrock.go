package summarizer

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
)

// ConverseAPI is the Bedrock runtime call used for summaries. Satisfied by *bedrockruntime.Client.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type bedrockProvider struct {
	client      ConverseAPI
	model       string
	temperature float32
	topP        float32
	maxTokens   int32
}

// NewBedrockProvider creates a Provider backed by the Bedrock Converse API.
func NewBedrockProvider(client ConverseAPI, cfg config.SummarizerConfig) Provider {
	return &bedrockProvider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.SamplingTemperature(),
		topP:        cfg.SamplingTopP(),
		maxTokens:   int32(cfg.MaxTokens),
	}
}

func (p *bedrockProvider) Name() string { return "bedrock:" + p.model }

func (p *bedrockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := p.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(p.model),
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			Temperature: aws.Float32(p.temperature),
			TopP:        aws.Float32(p.topP),
			MaxTokens:   aws.Int32(p.maxTokens),
		},
	})
	if err != nil {
		return "", err
	}

	// A reply without a message is treated as empty text.
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", nil
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String(), nil
}
