package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placementwiz/internal/flow"
	"placementwiz/internal/posting"
	"placementwiz/internal/session"
)

type stubSubmitter struct {
	saved []*posting.Posting
	err   error
}

func (s *stubSubmitter) Save(ctx context.Context, p *posting.Posting) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, p)
	return nil
}

var testSections = []flow.Section{
	{
		Name:  "basics",
		Label: "Basics",
		Icon:  "💼",
		Fields: []posting.Field{
			{Key: "role", Label: "Role", Rules: []posting.Rule{posting.RuleRequired}},
			{Key: "company_name", Label: "Company", Rules: []posting.Rule{posting.RuleRequired}},
		},
	},
	{
		Name:  "apply",
		Label: "Apply",
		Fields: []posting.Field{
			{Key: "apply_link", Label: "Link", Rules: []posting.Rule{posting.RuleRequired, posting.RuleURL}},
		},
	},
}

func newModel(t *testing.T, sub *stubSubmitter) *Model {
	t.Helper()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	sess, err := session.New(posting.KindJob, testSections, sub,
		session.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return New(context.Background(), sess)
}

func press(m *Model, t tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: t})
	return cmd
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func fillBasics(m *Model) {
	typeText(m, "Data Analyst")
	press(m, tea.KeyTab)
	typeText(m, "Globex")
}

func TestModel_InitialView(t *testing.T) {
	m := newModel(t, &stubSubmitter{})

	view := m.View()
	assert.Contains(t, view, "New Job posting")
	assert.Contains(t, view, "● Basics")
	assert.Contains(t, view, "○ Apply")
	assert.Contains(t, view, "step 1 of 2")
	assert.Contains(t, view, "Role *")
	assert.Contains(t, view, "esc cancel")
	assert.Contains(t, view, "enter next")
}

func TestModel_EnterBlockedShowsErrors(t *testing.T) {
	m := newModel(t, &stubSubmitter{})

	cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "basics", m.sess.ActiveSection().Name)
	view := m.View()
	assert.Contains(t, view, "Role is required")
	assert.Contains(t, view, "Company is required")
}

func TestModel_TabCyclesFocus(t *testing.T) {
	m := newModel(t, &stubSubmitter{})
	require.Equal(t, 0, m.focus)

	press(m, tea.KeyTab)
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	press(m, tea.KeyTab)
	assert.Equal(t, 0, m.focus)

	press(m, tea.KeyShiftTab)
	assert.Equal(t, 1, m.focus)
}

func TestModel_NavigateKeepsValues(t *testing.T) {
	m := newModel(t, &stubSubmitter{})
	fillBasics(m)

	press(m, tea.KeyEnter)
	require.Equal(t, "apply", m.sess.ActiveSection().Name)
	assert.Len(t, m.inputs, 1)
	assert.Contains(t, m.View(), "✓ Basics")
	assert.Contains(t, m.View(), "enter submit")
	assert.Contains(t, m.View(), "esc back")

	typeText(m, "https://globex.example/jobs")
	press(m, tea.KeyEsc)

	require.Equal(t, "basics", m.sess.ActiveSection().Name)
	assert.Equal(t, "Data Analyst", m.inputs[0].Value())
	assert.Equal(t, "Globex", m.inputs[1].Value())
	assert.Equal(t, "https://globex.example/jobs", m.sess.Value("apply_link"), "values of the section left behind are kept")
}

func TestModel_Submit(t *testing.T) {
	sub := &stubSubmitter{}
	m := newModel(t, sub)
	fillBasics(m)
	press(m, tea.KeyEnter)

	typeText(m, "not a link")
	assert.Nil(t, press(m, tea.KeyEnter))
	assert.Contains(t, m.View(), "Link must be a valid http(s) URL")
	assert.Empty(t, sub.saved)

	m.inputs[0].SetValue("https://globex.example/jobs")
	cmd := press(m, tea.KeyEnter)

	assert.True(t, isQuit(cmd))
	require.NotNil(t, m.Result())
	assert.Equal(t, "Data Analyst at Globex", m.Result().Title)
	assert.Len(t, sub.saved, 1)
	assert.False(t, m.Cancelled())
	assert.Empty(t, m.View())
}

func TestModel_SubmitFailureShown(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("database is locked")}
	m := newModel(t, sub)
	fillBasics(m)
	press(m, tea.KeyEnter)
	typeText(m, "https://globex.example/jobs")

	cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "database is locked")

	sub.err = nil
	assert.True(t, isQuit(press(m, tea.KeyEnter)), "retry succeeds")
}

func TestModel_Cancel(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Model)
		key   tea.KeyType
	}{
		{name: "esc on first section", key: tea.KeyEsc},
		{name: "ctrl+c", key: tea.KeyCtrlC},
		{
			name: "ctrl+c on later section",
			setup: func(m *Model) {
				fillBasics(m)
				press(m, tea.KeyEnter)
			},
			key: tea.KeyCtrlC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, &stubSubmitter{})
			if tt.setup != nil {
				tt.setup(m)
			}

			cmd := press(m, tt.key)

			assert.True(t, isQuit(cmd))
			assert.True(t, m.Cancelled())
			assert.Nil(t, m.Result())
		})
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newModel(t, &stubSubmitter{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, 74, m.inputs[0].Width)
}

func TestRenderHintBar(t *testing.T) {
	assert.Equal(t, "enter next • esc back", renderHintBar("enter", "next", "esc", "back"))
	assert.Empty(t, renderHintBar("odd"))
	assert.Empty(t, renderHintBar())
}
