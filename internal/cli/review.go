package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placementwiz/internal/posting"
)

func newApproveCommand(app *App) *cobra.Command {
	return newReviewCommand(app, "approve", "Approve a pending posting", posting.ApprovalApproved)
}

func newRejectCommand(app *App) *cobra.Command {
	return newReviewCommand(app, "reject", "Reject a posting", posting.ApprovalRejected)
}

func newReviewCommand(app *App, use, short string, a posting.Approval) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.resolvePosting(ctx, args[0])
			if err != nil {
				return app.fail(err)
			}
			if err := app.Store.SetApproval(ctx, p.ID, a); err != nil {
				return app.fail(err)
			}

			app.logger().Info("Posting reviewed",
				zap.String("id", p.ID),
				zap.String("approval", string(a)))
			app.Printer.Success(fmt.Sprintf("%s: %s", a, p.Title))
			return nil
		},
	}
}
