// Package tui is the interactive Bubble Tea front end for a posting session.
//
// The model renders the active section as one text input per field and maps
// keys onto the session:
//   - enter: next section, or submit on the final section
//   - esc: previous section, or cancel on the first section
//   - tab / shift+tab: move between fields
//   - ctrl+c: cancel
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"placementwiz/internal/output"
	"placementwiz/internal/posting"
	"placementwiz/internal/session"
)

// ErrCancelled is returned by [Run] when the user leaves the wizard.
var ErrCancelled = errors.New("wizard cancelled by user")

// Model is the Bubble Tea model for one posting session.
type Model struct {
	ctx     context.Context
	sess    *session.Session
	printer *output.Printer

	fields []posting.Field
	inputs []textinput.Model
	focus  int

	// submitErr is the last non-validation submission failure.
	submitErr error

	cancelled bool
	result    *posting.Posting
	width     int
}

// New creates a model driving sess. ctx is passed to the submitter.
func New(ctx context.Context, sess *session.Session) *Model {
	m := &Model{
		ctx:     ctx,
		sess:    sess,
		printer: output.NewPrinter(),
	}
	m.loadSection()
	return m
}

// loadSection rebuilds the inputs for the active section, pre-filled with any
// values entered earlier.
func (m *Model) loadSection() {
	m.fields = m.sess.ActiveSection().Fields
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Placeholder = f.Label
		in.Prompt = "› "
		in.CharLimit = 500
		in.SetValue(m.sess.Value(f.Key))
		if m.width > 0 {
			in.Width = m.width - 6
		}
		m.inputs[i] = in
	}
	m.focus = 0
	m.focusInput()
}

func (m *Model) focusInput() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// commit copies the input values into the session.
func (m *Model) commit() {
	for i, f := range m.fields {
		// Fields always belong to the active section, so Set cannot refuse them.
		_ = m.sess.Set(f.Key, m.inputs[i].Value())
	}
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 6
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.sess.IsFirstStep() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.commit()
			m.submitErr = nil
			if m.sess.Back() {
				m.loadSection()
			}
			return m, nil

		case "tab", "down":
			if len(m.inputs) > 0 {
				m.focus = (m.focus + 1) % len(m.inputs)
				m.focusInput()
			}
			return m, nil

		case "shift+tab", "up":
			if len(m.inputs) > 0 {
				m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
				m.focusInput()
			}
			return m, nil

		case "enter":
			return m.enter()
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) enter() (tea.Model, tea.Cmd) {
	m.commit()
	m.submitErr = nil

	if !m.sess.IsFinalStep() {
		if m.sess.Next() {
			m.loadSection()
		}
		return m, nil
	}

	p, err := m.sess.Submit(m.ctx)
	if err != nil {
		// Validation failures are shown per field from the session.
		if !errors.Is(err, session.ErrValidation) {
			m.submitErr = err
		}
		return m, nil
	}
	m.result = p
	return m, tea.Quit
}

// View implements [tea.Model].
func (m *Model) View() string {
	if m.result != nil || m.cancelled {
		return ""
	}

	var b strings.Builder
	sec := m.sess.ActiveSection()
	errs := m.sess.Errors()

	b.WriteString(styleTitle.Render(fmt.Sprintf("New %s posting", m.sess.Kind().Label())))
	b.WriteString("\n")
	b.WriteString(m.printer.ProgressLine(m.sess.Steps()))
	b.WriteString("\n\n")
	b.WriteString(styleSection.Render(strings.TrimSpace(sec.Icon + " " + sec.Label)))
	b.WriteString(styleMuted.Render(fmt.Sprintf("  step %d of %d", m.sess.ActiveIndex()+1, len(m.sess.Steps()))))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := f.Label
		if f.Required() {
			label += " *"
		}
		style := styleLabel
		if i == m.focus {
			style = styleLabelFocused
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := errs[f.Key]; ok {
			b.WriteString(styleError.Render("  " + f.Label + " " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.submitErr != nil {
		b.WriteString(styleError.Render("✗ " + m.submitErr.Error()))
		b.WriteString("\n\n")
	}

	enter, esc := "next", "back"
	if m.sess.IsFinalStep() {
		enter = "submit"
	}
	if m.sess.IsFirstStep() {
		esc = "cancel"
	}
	b.WriteString(renderHintBar("tab", "next field", "enter", enter, "esc", esc, "ctrl+c", "quit"))
	b.WriteString("\n")

	return b.String()
}

// Cancelled reports whether the user left without submitting.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Result returns the submitted posting, or nil.
func (m *Model) Result() *posting.Posting {
	return m.result
}

// Run shows the wizard for sess until the posting is submitted or the user
// cancels, in which case [ErrCancelled] is returned.
func Run(ctx context.Context, sess *session.Session, opts ...tea.ProgramOption) (*posting.Posting, error) {
	m := New(ctx, sess)

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if fm.cancelled || fm.result == nil {
		return nil, ErrCancelled
	}
	return fm.result, nil
}
