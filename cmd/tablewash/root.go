package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/classify"
	"github.com/tablewash/tablewash/pkg/cleaner"
	"github.com/tablewash/tablewash/pkg/config"
	"github.com/tablewash/tablewash/pkg/instruct"
	"github.com/tablewash/tablewash/pkg/llm"
	"github.com/tablewash/tablewash/pkg/logging"
	"github.com/tablewash/tablewash/pkg/pipeline"
)

// app carries the collaborators built once at startup and shared by
// the commands.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline

	configPath string
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "tablewash",
		Short:         "Clean tabular data and report on its quality",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newCleanCommand(a))
	root.AddCommand(newBatchCommand(a))
	return root
}

// bootstrap loads config, builds the logger and assembles the pipeline.
// When no API key is configured the classifier and interpreter are left
// out, which makes every run effectively restricted.
func (a *app) bootstrap() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	cleanerStage, err := cleaner.New(logger)
	if err != nil {
		return err
	}

	var classifier *classify.Classifier
	var interpreter *instruct.Interpreter
	if cfg.LLM.Enabled() {
		client, err := llm.NewHTTPClient(llm.Config{
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			Timeout:   cfg.LLM.Timeout(),
			MaxTokens: cfg.LLM.MaxTokens,
		}, logger)
		if err != nil {
			return err
		}
		if classifier, err = classify.New(client, logger); err != nil {
			return err
		}
		if interpreter, err = instruct.New(client, logger); err != nil {
			return err
		}
	} else {
		logger.Info("No API key configured, running deterministic cleaning only")
	}

	a.pipeline, err = pipeline.New(cleanerStage, classifier, interpreter, logger)
	return err
}
