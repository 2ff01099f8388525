package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/generative-ai-on-aws/summarize-me/internal/app"
	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/filestore"
	"github.com/generative-ai-on-aws/summarize-me/internal/output"
	"github.com/generative-ai-on-aws/summarize-me/internal/version"
)

const inputPrompt = "Enter the path to the input file: "

type Dependencies struct {
	LoadConfig func(path string) (*config.Config, error)
	NewApp     func(ctx context.Context, cfg *config.Config) (*app.App, error)
}

// session resolves config and app lazily so flags are parsed first.
type session struct {
	deps       *Dependencies
	configPath string
	cfg        *config.Config
	app        *app.App
}

func (s *session) config() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	cfg, err := s.deps.LoadConfig(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	s.cfg = cfg
	return cfg, nil
}

func (s *session) application(ctx context.Context) (*app.App, error) {
	if s.app != nil {
		return s.app, nil
	}
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	a, err := s.deps.NewApp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	s.app = a
	return a, nil
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	s := &session{deps: deps}

	rootCmd := &cobra.Command{
		Use:           "summarize-me",
		Short:         "Turn a meeting recording into summaries and a summary video",
		Long:          "Transcribes a meeting recording, extracts key points and action items, renders a narrated summary video and indexes it for search.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := promptInputPath(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runPipeline(cmd, s, path)
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", "", "config file (default "+config.DefaultPath+" when present)")

	rootCmd.AddCommand(NewWatchCmd(s))
	rootCmd.AddCommand(NewSearchCmd(s))
	rootCmd.AddCommand(NewDoctorCmd(s))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func promptInputPath(in io.Reader, out io.Writer) (string, error) {
	output.NewFormatter(out).Prompt(inputPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input path: %w", err)
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", fmt.Errorf("no input file given")
	}
	return path, nil
}

func runPipeline(cmd *cobra.Command, s *session, path string) error {
	// Reject bad input before any backend is touched.
	if _, err := filestore.ValidateInput(path); err != nil {
		return err
	}

	a, err := s.application(cmd.Context())
	if err != nil {
		return err
	}

	res, err := a.Pipeline.Run(cmd.Context(), path)
	if err != nil {
		return err
	}

	f := output.NewFormatter(cmd.OutOrStdout())
	f.MeetingComplete(res.Duration)
	f.Artifact("Transcript", res.TranscriptPath)
	f.Artifact("Key points", res.KeyPointsPath)
	f.Artifact("Action items", res.ActionItemsPath)
	f.Artifact("Report", res.ReportPath)
	f.Artifact("Video", res.VideoPath)
	if res.IndexErr != nil {
		f.Warning("Video was not indexed: " + res.IndexErr.Error())
	}
	return nil
}
