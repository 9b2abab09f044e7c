package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newEditCmd creates the edit command for adjusting a year's layout in
// the terminal. Edits run through the same session as the HTTP API, so
// saved layouts are picked up by serve and render.
func newEditCmd(configPath *string) *cobra.Command {
	var (
		yearArg  string
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Adjust a year's layout interactively",
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

			year, err := resolveYear(yearArg, a.session)
			if err != nil {
				return err
			}
			model, err := newEditorModel(ctx, a.session, year)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(editorModel); ok && m.dirty {
				printWarning("Layout has unsaved changes (press s in the editor to persist)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&yearArg, "year", "y", "", "year to edit (default: most recent)")

	return cmd
}
