// Package session hosts one posting form: it pairs a [wizard.Wizard] with the
// form values, per-section validation and the final submission.
//
// The session is the "hosting form" around the wizard controller:
//   - the wizard tracks which section is active and what has been completed;
//   - the session owns field values and turns section field rules into the
//     wizard's validate handlers;
//   - a [Submitter] persists the finished posting.
//
// Key concepts:
//   - [Session.Next] validates the active section before advancing
//   - [Session.Back] retreats without clearing entered values
//   - [Session.Submit] is only allowed on the final section
//   - Progress can be tracked via [ProgressCallback]
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"placementwiz/internal/flow"
	"placementwiz/internal/posting"
	"placementwiz/internal/wizard"
)

// Sentinel errors for session operations.
var (
	// ErrNotFinalStep is returned by Submit before the final section is active.
	ErrNotFinalStep = errors.New("submit is only available on the final section")

	// ErrValidation wraps the field errors that blocked a submission.
	ErrValidation = errors.New("validation failed")

	// ErrSubmitted is returned once the session has been submitted.
	ErrSubmitted = errors.New("session already submitted")

	// ErrFieldNotInSection is returned when setting a field that does not
	// belong to the active section.
	ErrFieldNotInSection = errors.New("field is not part of the active section")
)

// Submitter persists a finished posting.
//
// The store package's Store types implement this interface.
type Submitter interface {
	Save(ctx context.Context, p *posting.Posting) error
}

// ProgressCallback is invoked after the active section changes.
//
// It receives the 1-based index of the new active section, the total section
// count, and the section itself.
type ProgressCallback func(stepIndex, totalSteps int, section flow.Section)

// Option configures a [Session].
type Option func(*Session)

// WithClock overrides the clock used for date rules and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithAuthor records who is authoring the posting.
func WithAuthor(author string) Option {
	return func(s *Session) { s.author = author }
}

// WithProgressCallback registers cb to be told about section changes.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(s *Session) { s.progress = cb }
}

// Session is a single in-progress posting form.
//
// A Session is not safe for concurrent use. It is discarded after a
// successful [Session.Submit]; further edits and navigation are refused.
type Session struct {
	kind      posting.Kind
	sections  []flow.Section
	wiz       *wizard.Wizard
	form      *posting.Form
	submitter Submitter

	now      func() time.Time
	logger   *zap.Logger
	author   string
	progress ProgressCallback

	// errs holds the field errors from the most recent failed validation.
	errs posting.FieldErrors

	submitted *posting.Posting
}

// New creates a session for kind walking through sections.
//
// Returns an error wrapping [wizard.ErrInvalidConfiguration] when sections
// cannot form a wizard.
func New(kind posting.Kind, sections []flow.Section, submitter Submitter, opts ...Option) (*Session, error) {
	if submitter == nil {
		return nil, fmt.Errorf("session for %s: no submitter configured", kind)
	}

	s := &Session{
		kind:      kind,
		sections:  sections,
		form:      posting.NewForm(),
		submitter: submitter,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	wiz, err := wizard.New(flow.StepDefs(sections, s.validatorFor))
	if err != nil {
		return nil, fmt.Errorf("session for %s: %w", kind, err)
	}
	s.wiz = wiz

	s.logger.Debug("Session started",
		zap.String("kind", string(kind)),
		zap.Int("sections", len(sections)))

	return s, nil
}

// validatorFor builds the wizard validate handler for one section. Failures
// are recorded so the caller can show them.
func (s *Session) validatorFor(section flow.Section) wizard.ValidateFunc {
	return func() bool {
		s.errs = posting.ValidateFields(section.Fields, s.form, s.now())
		if len(s.errs) > 0 {
			s.logger.Debug("Section validation failed",
				zap.String("section", section.Name),
				zap.Strings("fields", s.errs.Keys()))
			return false
		}
		return true
	}
}

// Set stores a value for a field of the active section.
//
// Returns [ErrFieldNotInSection] for fields of other sections and
// [ErrSubmitted] after submission.
func (s *Session) Set(key, value string) error {
	if s.submitted != nil {
		return ErrSubmitted
	}
	for _, f := range s.ActiveSection().Fields {
		if f.Key == key {
			s.form.Set(key, value)
			delete(s.errs, key)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrFieldNotInSection, key)
}

// Next validates the active section and advances when it passes.
//
// On failure the field errors are available from [Session.Errors]. On the
// final section a passing validation does not move; use [Session.Submit].
// Returns true if the active section changed.
func (s *Session) Next() bool {
	if s.submitted != nil {
		return false
	}
	if !s.wiz.Next() {
		return false
	}
	s.changed()
	return true
}

// Back returns to the previous section. Entered values are kept, but the
// sections from the one being left onwards must be validated again.
// Returns true if the active section changed.
func (s *Session) Back() bool {
	if s.submitted != nil {
		return false
	}
	if !s.wiz.Retreat() {
		return false
	}
	s.errs = nil
	s.changed()
	return true
}

func (s *Session) changed() {
	idx := s.wiz.ActiveIndex()
	section := s.sections[idx]

	s.logger.Debug("Active section changed",
		zap.String("kind", string(s.kind)),
		zap.String("section", section.Name),
		zap.Int("index", idx))

	if s.progress != nil {
		s.progress(idx+1, len(s.sections), section)
	}
}

// Submit validates the final section, builds the posting and hands it to the
// submitter.
//
// Returns [ErrNotFinalStep] before the final section, an error wrapping
// [ErrValidation] and the [posting.FieldErrors] when the final section is
// invalid, and a wrapped submitter error when persisting fails. A failed
// submission leaves the session usable so the caller can retry.
func (s *Session) Submit(ctx context.Context) (*posting.Posting, error) {
	if s.submitted != nil {
		return nil, ErrSubmitted
	}
	if !s.wiz.IsFinalStep() {
		return nil, ErrNotFinalStep
	}

	if !s.validatorFor(s.ActiveSection())() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, s.Errors())
	}

	p := posting.New(s.kind, s.form, s.author, s.now())
	if err := s.submitter.Save(ctx, p); err != nil {
		s.logger.Warn("Posting submission failed",
			zap.String("kind", string(s.kind)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to submit posting: %w", err)
	}

	s.submitted = p
	s.logger.Info("Posting submitted",
		zap.String("id", p.ID),
		zap.String("kind", string(p.Kind)),
		zap.String("title", p.Title))

	return p, nil
}

// Kind returns the posting kind being authored.
func (s *Session) Kind() posting.Kind {
	return s.kind
}

// Submitted reports whether [Session.Submit] has succeeded.
func (s *Session) Submitted() bool {
	return s.submitted != nil
}

// ActiveIndex returns the index of the active section.
func (s *Session) ActiveIndex() int {
	return s.wiz.ActiveIndex()
}

// ActiveSection returns the active section.
func (s *Session) ActiveSection() flow.Section {
	return s.sections[s.wiz.ActiveIndex()]
}

// IsFirstStep reports whether the first section is active.
func (s *Session) IsFirstStep() bool {
	return s.wiz.IsFirstStep()
}

// IsFinalStep reports whether the final section is active. Hosts use it to
// choose between a "Next" and a "Finish" action.
func (s *Session) IsFinalStep() bool {
	return s.wiz.IsFinalStep()
}

// Steps returns a snapshot of the wizard steps and their statuses.
func (s *Session) Steps() []wizard.Step {
	return s.wiz.Steps()
}

// Value returns the current value of a field.
func (s *Session) Value(key string) string {
	return s.form.Get(key)
}

// Errors returns a copy of the field errors from the last failed validation.
func (s *Session) Errors() posting.FieldErrors {
	out := make(posting.FieldErrors, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// SectionView is a read-only view of one section for previews.
type SectionView struct {
	Section flow.Section
	Status  wizard.Status
	Values  map[string]string
}

// Preview returns every section with its status and the values entered for
// its fields so far.
func (s *Session) Preview() []SectionView {
	views := make([]SectionView, len(s.sections))
	for i, sec := range s.sections {
		values := make(map[string]string)
		for _, f := range sec.Fields {
			if v := s.form.Get(f.Key); v != "" {
				values[f.Key] = v
			}
		}
		views[i] = SectionView{Section: sec, Status: s.wiz.StatusAt(i), Values: values}
	}
	return views
}
