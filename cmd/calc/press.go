package main

import (
	"encoding/json"
	"fmt"

	"go-chi-calculator/internal/calculator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPressCmd(root *rootOptions) *cobra.Command {
	var printState bool

	cmd := &cobra.Command{
		Use:   "press KEYS...",
		Short: "Press keys without opening the keypad",
		Long: `press feeds keys to a fresh calculator and prints the final display.
Each argument may hold several keys: "calc press 7+3=" equals "calc press 7 + 3 =".
Flags go before the keys. Once the first key is seen everything else is a
key, so "calc press 9 -4 =" works; use "--" when the first key starts with "-".`,
		Example: `  calc press 9-4= +2=
  calc press 9 -4 =
  calc press --state 5 / 0 =
  calc press -- -3 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(root.logFile, root.debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			toks, err := splitKeys(args)
			if err != nil {
				return err
			}

			state := calculator.HandleAll(calculator.NewState(), toks...)
			logger.Debug("keys pressed",
				zap.Int("keys", len(toks)),
				zap.String("display", state.Display),
			)

			out := cmd.OutOrStdout()
			if !printState {
				_, err := fmt.Fprintln(out, state.Display)
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(state)
		},
	}

	cmd.Flags().BoolVar(&printState, "state", false, "print the full calculator state as JSON")
	// "-" and "-4" are keys, not flags, once key arguments start.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func splitKeys(args []string) ([]calculator.Token, error) {
	var raw []string
	for _, a := range args {
		for _, r := range a {
			raw = append(raw, string(r))
		}
	}
	return calculator.ParseTokens(raw)
}
