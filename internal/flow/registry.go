// Package flow maps posting kinds to the ordered form sections their wizards
// walk through.
//
// Flows can come from hardcoded defaults ([NewRegistry]) or from a flow
// manifest ([NewRegistryFromManifest]) so a placement cell can reshape its
// forms without a rebuild.
//
// Key types:
//   - [Registry] - Configurable kind-to-sections mapping
//   - [Section] - A single wizard step and its fields
//
// The package-level [Sections] function uses the default registry.
package flow

import (
	"errors"
	"fmt"

	"placementwiz/internal/manifest"
	"placementwiz/internal/posting"
)

// Sentinel errors for flow lookup.
var (
	// ErrUnknownKind indicates the registry has no flow for the requested kind.
	ErrUnknownKind = errors.New("unknown posting kind")

	// ErrEmptyFlow indicates a kind is registered without any sections.
	// A wizard cannot be built from it.
	ErrEmptyFlow = errors.New("posting flow has no sections")
)

// Registry maps posting kinds to their section sequences.
//
// Create with [NewRegistry] for the built-in flows or [NewRegistryFromManifest]
// for manifest-driven flows.
type Registry struct {
	flows map[posting.Kind][]Section

	// order keeps kinds in registration order for listing.
	order []posting.Kind
}

// NewRegistry creates a [Registry] with the built-in job, internship and exam
// flows:
//   - job: company → role → eligibility → application
//   - internship: company → internship → eligibility → application
//   - exam: details → eligibility → syllabus → registration
func NewRegistry() *Registry {
	r := &Registry{flows: make(map[posting.Kind][]Section)}
	for _, k := range posting.Kinds() {
		r.register(k, cloneSections(defaultFlows[k]))
	}
	return r
}

// NewRegistryFromManifest creates a [Registry] from a flow manifest.
//
// Kinds, sections and fields follow manifest order. Unknown kinds and rule
// names are rejected so typos surface when the manifest is loaded rather than
// while someone is filling in a form.
func NewRegistryFromManifest(m *manifest.Manifest) (*Registry, error) {
	r := &Registry{flows: make(map[posting.Kind][]Section)}

	for _, rawKind := range m.Kinds() {
		kind, err := posting.ParseKind(rawKind)
		if err != nil {
			return nil, err
		}

		var sections []Section
		for _, name := range m.Sections(rawKind) {
			entries := m.EntriesFor(rawKind, name)
			s := Section{
				Name:  name,
				Label: entries[0].Label,
				Icon:  entries[0].Icon,
			}
			if s.Label == "" {
				s.Label = name
			}
			for _, e := range entries {
				f := posting.Field{Key: e.Field, Label: e.FieldLabel}
				for _, raw := range e.Rules {
					rule, err := posting.ParseRule(raw)
					if err != nil {
						return nil, fmt.Errorf("%s/%s/%s: %w", rawKind, name, e.Field, err)
					}
					f.Rules = append(f.Rules, rule)
				}
				s.Fields = append(s.Fields, f)
			}
			sections = append(sections, s)
		}

		r.register(kind, sections)
	}

	return r, nil
}

func (r *Registry) register(kind posting.Kind, sections []Section) {
	if _, ok := r.flows[kind]; !ok {
		r.order = append(r.order, kind)
	}
	r.flows[kind] = sections
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []posting.Kind {
	return append([]posting.Kind(nil), r.order...)
}

// Sections returns a copy of the section sequence for kind.
//
// Returns [ErrUnknownKind] for kinds with no flow and [ErrEmptyFlow] for
// kinds registered without sections.
func (r *Registry) Sections(kind posting.Kind) ([]Section, error) {
	sections, ok := r.flows[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFlow, kind)
	}
	return cloneSections(sections), nil
}

// InsertSectionAfter inserts section into kind's flow right after the
// section named after.
//
// It is a no-op when the kind is unknown, when after is not in the flow, or
// when a section with the same name already exists.
func (r *Registry) InsertSectionAfter(kind posting.Kind, after string, section Section) {
	sections, ok := r.flows[kind]
	if !ok {
		return
	}

	idx := -1
	for i, s := range sections {
		if s.Name == section.Name {
			return
		}
		if s.Name == after {
			idx = i
		}
	}
	if idx < 0 {
		return
	}

	updated := make([]Section, 0, len(sections)+1)
	updated = append(updated, sections[:idx+1]...)
	updated = append(updated, section)
	updated = append(updated, sections[idx+1:]...)
	r.flows[kind] = updated
}

// defaultRegistry backs the package-level [Sections] function.
var defaultRegistry = NewRegistry()

// Sections returns the built-in section sequence for kind.
//
// For manifest-driven flows, create a [Registry] with
// [NewRegistryFromManifest] and call its Sections method.
func Sections(kind posting.Kind) ([]Section, error) {
	return defaultRegistry.Sections(kind)
}
