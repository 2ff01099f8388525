package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/output"
)

func NewDoctorCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())

			cfg, err := s.config()
			if err != nil {
				return err
			}
			ok := checkConfig(f, cfg)

			a, err := s.application(cmd.Context())
			if err != nil {
				f.SetupCheck("Clients", false, err.Error())
				f.Warning("\nSome prerequisites are missing.")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if a.AWSConfig.Credentials == nil {
				f.SetupCheck("AWS credentials", false, "no credential provider found")
				ok = false
			} else if _, err := a.AWSConfig.Credentials.Retrieve(ctx); err != nil {
				f.SetupCheck("AWS credentials", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("AWS credentials", true, "region "+cfg.AWS.Region)
			}

			if err := a.Index.Ready(ctx); err != nil {
				f.SetupCheck("Weaviate", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("Weaviate", true, cfg.Index.Scheme+"://"+cfg.Index.Host)
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to summarize!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}

func checkConfig(f *output.Formatter, cfg *config.Config) bool {
	ok := true
	check := func(name string, present bool, detail, missing string) {
		if present {
			f.SetupCheck(name, true, detail)
			return
		}
		f.SetupCheck(name, false, missing)
		ok = false
	}

	check("S3 bucket", cfg.AWS.Bucket != "", cfg.AWS.Bucket, "not set. Set S3_BUCKET_NAME or aws.bucket")
	check("HeyGen API key", cfg.Video.APIKey != "", "configured", "not set. Set HEYGEN_API_KEY or video.api_key")
	check("HeyGen template", cfg.Video.TemplateID != "", cfg.Video.TemplateID, "not set. Set HEYGEN_TEMPLATE_ID or video.template_id")

	switch cfg.Summarizer.Provider {
	case config.ProviderGemini:
		check("Gemini API key", cfg.Summarizer.GeminiAPIKey != "", "configured", "not set. Set GEMINI_API_KEY")
	case config.ProviderOpenAI:
		check("OpenAI API key", cfg.Summarizer.OpenAIAPIKey != "", "configured", "not set. Set OPENAI_API_KEY")
	default:
		f.SetupCheck("Summarizer", true, "bedrock "+cfg.Summarizer.Model)
	}

	for _, p := range cfg.Index.Fixtures {
		if _, err := os.Stat(p); err != nil {
			check("Fixture "+p, false, "", err.Error())
		}
	}
	return ok
}
