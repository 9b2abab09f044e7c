package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newLayoutCmd creates the layout command, which runs the full build →
// layout → override → route pipeline for a year and writes the
// positioned diagram as JSON. Saved layout overrides are applied, so
// the output matches what serve and render see.
func newLayoutCmd(configPath *string) *cobra.Command {
	var (
		output  string
		yearArg string
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Lay out a year's diagram and write it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			dataPath := ""
			if len(args) == 1 {
				dataPath = args[0]
			}

			a, err := newApp(ctx, *configPath, dataPath, logger)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			year, err := resolveYear(yearArg, a.session)
			if err != nil {
				return err
			}
			d, err := a.session.Diagram(ctx, year)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return fmt.Errorf("encode diagram: %w", err)
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			printStats(len(d.Graph.Nodes), len(d.Graph.Links), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&yearArg, "year", "y", "", "year to lay out (default: most recent)")

	return cmd
}
