package cli

import (
	"github.com/spf13/cobra"

	"placementwiz/internal/posting"
)

func newStepsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps <kind>",
		Short: "Show the sections and fields of a posting flow",
		Long: `Show every section the wizard walks through for a posting kind,
with each field's key and validation rules. Nothing is created.

Example:
  placementwiz steps internship`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := posting.ParseKind(args[0])
			if err != nil {
				return app.fail(err)
			}
			sections, err := app.Registry.Sections(kind)
			if err != nil {
				return app.fail(err)
			}
			app.Printer.Sections(kind, sections)
			return nil
		},
	}
}

func newKindsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the posting kinds that have a flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.Kinds(app.Registry.Kinds())
			return nil
		},
	}
}
