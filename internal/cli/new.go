package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placementwiz/internal/flow"
	"placementwiz/internal/posting"
	"placementwiz/internal/script"
	"placementwiz/internal/session"
	"placementwiz/internal/tui"
)

func newNewCommand(app *App) *cobra.Command {
	var (
		scriptPath string
		author     string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "new <kind>",
		Short: "Create a posting with the step-by-step wizard",
		Long: `Create a job, internship or exam posting one section at a time.
Each section is validated before the next one opens; the posting is
submitted for approval from the final section.

With --script, answers are replayed from a JSON-lines file instead of the
interactive wizard ("-" reads stdin):

  {"action":"set","field":"role","value":"SDE"}
  {"action":"next"}
  {"action":"back"}
  {"action":"submit"}

Once the posting passes validation every section is printed with its values. With
--dry-run the posting is validated and previewed but not saved.

Example:
  placementwiz new job
  placementwiz new exam --script gate.jsonl --author exam-cell
  placementwiz new exam --script gate.jsonl --dry-run`,
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
			if author == "" {
				author = app.Config.Author
			}

			var sess *session.Session
			opts := []session.Option{
				session.WithLogger(app.logger()),
				session.WithAuthor(author),
			}
			if app.Now != nil {
				opts = append(opts, session.WithClock(app.Now))
			}
			if scriptPath != "" {
				opts = append(opts, session.WithProgressCallback(func(i, total int, sec flow.Section) {
					app.Printer.Muted(fmt.Sprintf("→ step %d/%d: %s", i, total, sec.Label))
					app.Printer.Progress(sess.Steps())
				}))
			}

			var submitter session.Submitter = app.Store
			if dryRun {
				submitter = discardSubmitter{}
			}

			sess, err = session.New(kind, sections, submitter, opts...)
			if err != nil {
				return app.fail(err)
			}

			ctx := cmd.Context()

			var p *posting.Posting
			if scriptPath != "" {
				p, err = app.playScript(ctx, sess, scriptPath, cmd.InOrStdin())
			} else {
				p, err = app.Interactive(ctx, sess)
			}
			if errors.Is(err, tui.ErrCancelled) {
				app.Printer.Warning("Cancelled, nothing was saved")
				return NewExitError(1)
			}
			if err != nil {
				return app.fail(err)
			}

			app.printPreview(sess)
			if dryRun {
				app.Printer.Success(fmt.Sprintf("%q is valid", p.Title))
				app.Printer.Warning("Dry run, nothing was saved")
				return nil
			}

			app.logger().Info("Posting created",
				zap.String("id", p.ID),
				zap.String("kind", string(p.Kind)))
			app.Printer.Success(fmt.Sprintf("Submitted %q for approval", p.Title))
			app.Printer.Muted("ID: " + p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "replay answers from a JSON-lines file instead of the interactive wizard")
	cmd.Flags().StringVar(&author, "author", "", "who is posting (defaults to the author config key)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and preview the posting without saving it")

	return cmd
}

// discardSubmitter accepts every posting without storing it.
type discardSubmitter struct{}

func (discardSubmitter) Save(ctx context.Context, p *posting.Posting) error {
	return nil
}

// printPreview prints every section with the values entered for it.
func (app *App) printPreview(sess *session.Session) {
	app.Printer.Info("")
	for _, view := range sess.Preview() {
		app.Printer.SectionValues(view.Section, view.Values)
	}
	app.Printer.Info("")
}

func (app *App) playScript(ctx context.Context, sess *session.Session, path string, stdin io.Reader) (*posting.Posting, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	observer := func(a script.Action, s *session.Session, moved bool) {
		if a.Type == script.ActionNext && !moved && len(s.Errors()) > 0 {
			sec := s.ActiveSection()
			app.Printer.Warning(fmt.Sprintf("line %d: %s is incomplete", a.Line, sec.Label))
			app.Printer.FieldErrors(s.Errors(), sec.Fields)
		}
	}

	p, err := script.Play(ctx, sess, script.NewParser().Parse(r), observer)
	if errors.Is(err, session.ErrValidation) {
		app.Printer.FieldErrors(sess.Errors(), sess.ActiveSection().Fields)
	}
	return p, err
}
