package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reeflow/reeflow/pkg/flow"
)

// newBuildCmd creates the build command, which constructs the flow graph
// for one year and writes it as JSON, before any layout runs. Useful for
// inspecting what the graph builder makes of a data row.
func newBuildCmd(configPath *string) *cobra.Command {
	var (
		output  string
		yearArg string
	)

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a year's flow graph and write it as JSON",
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
			row, err := a.dataset.Row(year)
			if err != nil {
				return err
			}

			g := flow.Build(row)
			data, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return fmt.Errorf("encode graph: %w", err)
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			printStats(len(g.Nodes), len(g.Links), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&yearArg, "year", "y", "", "year to build (default: most recent)")

	return cmd
}
