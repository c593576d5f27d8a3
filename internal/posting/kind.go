// Package posting defines the portal's postings and the field rules used to
// validate them while they are being authored.
//
// Key types:
//   - [Kind] - job, internship or exam
//   - [Approval] - review state of a submitted posting
//   - [Posting] - a submitted posting as persisted by the store
//   - [Form] - field values collected by a hosting form
//   - [Field] and [Rule] - per-field validation rules
package posting

import (
	"fmt"
	"strings"
)

// Kind identifies the type of posting.
type Kind string

// Posting kinds.
const (
	KindJob        Kind = "job"
	KindInternship Kind = "internship"
	KindExam       Kind = "exam"
)

// Kinds returns every known kind in display order.
func Kinds() []Kind {
	return []Kind{KindJob, KindInternship, KindExam}
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindJob, KindInternship, KindExam:
		return true
	}
	return false
}

// Label returns a capitalised display name.
func (k Kind) Label() string {
	switch k {
	case KindJob:
		return "Job"
	case KindInternship:
		return "Internship"
	case KindExam:
		return "Exam"
	default:
		return string(k)
	}
}

// ParseKind converts user input (case-insensitive) into a [Kind].
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("unknown posting kind: %q", s)
	}
	return k, nil
}
