package main

import (
	"go-chi-calculator/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	name    string
	id      string
	logFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Keypad calculator",
		Long: `calc is a two-operand keypad calculator.

Run without arguments to open the interactive keypad. Type digits and
+ - * / =, press c to clear and q to quit.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logFile, opts.debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			final, err := tui.Run(tui.Identity{Name: opts.name, ID: opts.id}, logger, tea.WithAltScreen())
			if err != nil {
				return err
			}

			logger.Info("keypad closed", zap.String("display", final.Display))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "name shown under the keypad")
	cmd.Flags().StringVar(&opts.id, "id", "", "identity line shown under the name")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log every key press")

	cmd.AddCommand(newPressCmd(opts))

	return cmd
}

// newLogger logs to path, or nowhere when path is empty: the keypad owns the
// terminal so nothing may be written to stdout or stderr.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
