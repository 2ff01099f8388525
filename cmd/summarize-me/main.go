package main

import (
	"os"

	"github.com/generative-ai-on-aws/summarize-me/internal/app"
	"github.com/generative-ai-on-aws/summarize-me/internal/cli"
	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/output"
)

func main() {
	deps := &cli.Dependencies{
		LoadConfig: config.Resolve,
		NewApp:     app.New,
	}

	if err := cli.NewRootCmd(deps).Execute(); err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
