package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reoring/vld/internal/config"
	"github.com/reoring/vld/internal/logger"
)

// app carries what every subcommand needs.
type app struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func newRootCmd(cfg config.Config, stdout, stderr io.Writer) *cobra.Command {
	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "vld",
		Short: "Validate JSON and YAML documents against schemas",
		Long: `vld validates JSON and YAML documents against the built-in schemas and
reports every issue with its path, code and offending value.

Defaults come from VLD_* environment variables (or a .env file); flags
override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			a.log = logger.New(
				logger.WithOutput(a.stderr),
				logger.WithLevel(a.cfg.Level()),
				logger.WithFormat(logger.Format(a.cfg.LogFormat)),
			)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json")

	root.AddCommand(newValidateCmd(a), newFmtCmd(a), newSchemasCmd(a))
	return root
}
