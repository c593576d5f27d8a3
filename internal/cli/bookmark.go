package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBookmarkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <user> <id>",
		Short: "Save a posting to a user's bookmarks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.resolvePosting(ctx, args[1])
			if err != nil {
				return app.fail(err)
			}
			if err := app.Store.Bookmark(ctx, args[0], p.ID); err != nil {
				return app.fail(err)
			}
			app.Printer.Success(fmt.Sprintf("Bookmarked %q for %s", p.Title, args[0]))
			return nil
		},
	}
}

func newUnbookmarkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unbookmark <user> <id>",
		Short: "Remove a posting from a user's bookmarks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.resolvePosting(ctx, args[1])
			if err != nil {
				return app.fail(err)
			}
			if err := app.Store.Unbookmark(ctx, args[0], p.ID); err != nil {
				return app.fail(err)
			}
			app.Printer.Success(fmt.Sprintf("Removed %q from %s's bookmarks", p.Title, args[0]))
			return nil
		},
	}
}

func newBookmarksCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks <user>",
		Short: "List a user's bookmarked postings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := app.Store.Bookmarks(cmd.Context(), args[0])
			if err != nil {
				return app.fail(err)
			}
			app.Printer.PostingTable(ps)
			return nil
		},
	}
}
