package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"placementwiz/internal/config"
	"placementwiz/internal/flow"
	"placementwiz/internal/output"
	"placementwiz/internal/posting"
	"placementwiz/internal/session"
	"placementwiz/internal/store"
)

// testNow is the fixed clock used by command tests.
var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// MockInteractive records sessions handed to the interactive runner and
// drives them with Drive.
type MockInteractive struct {
	Calls int
	Drive func(sess *session.Session) (*posting.Posting, error)
}

func (m *MockInteractive) Run(ctx context.Context, sess *session.Session) (*posting.Posting, error) {
	m.Calls++
	if m.Drive == nil {
		return nil, nil
	}
	return m.Drive(sess)
}

// testApp builds an App over a YAML store in a temp dir, printing to a
// buffer.
func testApp(t *testing.T) (*App, *bytes.Buffer, *MockInteractive) {
	t.Helper()
	t.Setenv(store.PathEnv, "")

	buf := &bytes.Buffer{}
	interactive := &MockInteractive{}
	app := &App{
		Config:      config.DefaultConfig(),
		Store:       store.NewYAMLStore(filepath.Join(t.TempDir(), "postings.yaml")),
		Registry:    flow.NewRegistry(),
		Printer:     output.NewPrinterWithWriter(buf),
		Interactive: interactive.Run,
		Now:         func() time.Time { return testNow },
	}
	return app, buf, interactive
}

// seedPosting stores a posting created at testNow minus age.
func seedPosting(t *testing.T, app *App, id string, kind posting.Kind, title string, age time.Duration) *posting.Posting {
	t.Helper()
	created := testNow.Add(-age)
	p := &posting.Posting{
		ID:        id,
		Kind:      kind,
		Title:     title,
		Slug:      title,
		Fields:    map[string]string{},
		Approval:  posting.ApprovalPending,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, app.Store.Save(context.Background(), p))
	return p
}

// writeScript writes a JSON-lines script into a temp dir.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
