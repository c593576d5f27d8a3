package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"placementwiz/internal/posting"
	"placementwiz/internal/store"
)

var (
	// errAmbiguousID is returned when an ID prefix matches several postings.
	errAmbiguousID = errors.New("ambiguous posting ID prefix")

	// errEmptyID is returned for a blank ID argument, which would otherwise
	// prefix-match every posting.
	errEmptyID = errors.New("posting ID must not be empty")
)

// resolvePosting finds a posting by full ID or by a unique ID prefix, as
// printed in the list tables.
func (app *App) resolvePosting(ctx context.Context, id string) (*posting.Posting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errEmptyID
	}

	p, err := app.Store.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	all, err := app.Store.List(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	var matches []*posting.Posting
	for _, q := range all {
		if strings.HasPrefix(q.ID, id) {
			matches = append(matches, q)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s matches %d postings", errAmbiguousID, id, len(matches))
	}
}

func newListCommand(app *App) *cobra.Command {
	var kind, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List postings, newest first",
		Long: `List submitted postings, newest first.

Example:
  placementwiz list
  placementwiz list --kind internship --status approved`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f store.Filter
			if kind != "" {
				k, err := posting.ParseKind(kind)
				if err != nil {
					return app.fail(err)
				}
				f.Kind = k
			}
			if status != "" {
				a, err := posting.ParseApproval(status)
				if err != nil {
					return app.fail(err)
				}
				f.Approval = a
			}

			ps, err := app.Store.List(cmd.Context(), f)
			if err != nil {
				return app.fail(err)
			}
			app.Printer.PostingTable(ps)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only show this posting kind (job, internship, exam)")
	cmd.Flags().StringVar(&status, "status", "", "only show this approval status (pending, approved, rejected)")

	return cmd
}

func newQueueCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show postings waiting for approval",
		Long: `Show the approval queue: every pending posting, newest first.
Review one with "show", then "approve" or "reject" it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := app.Store.List(cmd.Context(), store.Filter{Approval: posting.ApprovalPending})
			if err != nil {
				return app.fail(err)
			}
			app.Printer.PostingTable(ps)
			if len(ps) > 0 {
				app.Printer.Muted(fmt.Sprintf("%d pending", len(ps)))
			}
			return nil
		},
	}
}

func newShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.resolvePosting(cmd.Context(), args[0])
			if err != nil {
				return app.fail(err)
			}
			app.Printer.PostingDetail(p)
			return nil
		},
	}
}
