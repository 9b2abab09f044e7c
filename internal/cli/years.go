package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newYearsCmd creates the years command for listing dataset coverage.
func newYearsCmd(configPath *string) *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "years [file]",
		Short: "List the years available in a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if len(args) == 1 {
				dataPath = args[0]
			}

			a, err := newApp(ctx, *configPath, dataPath, logger)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			years := a.session.Years()
			printInfo("%d years in %s", len(years), a.cfg.Data.Path)
			for _, y := range years {
				fmt.Println(StyleNumber.Render(fmt.Sprintf("  %d", y)))
			}
			return nil
		},
	}

	return cmd
}
