package posting

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Posting is a submitted job, internship or exam posting.
type Posting struct {
	ID        string            `yaml:"id" json:"id"`
	Kind      Kind              `yaml:"kind" json:"kind"`
	Title     string            `yaml:"title" json:"title"`
	Slug      string            `yaml:"slug" json:"slug"`
	Fields    map[string]string `yaml:"fields" json:"fields"`
	Approval  Approval          `yaml:"approval" json:"approval"`
	Author    string            `yaml:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time         `yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time         `yaml:"updated_at" json:"updated_at"`
}

// New builds a pending [Posting] from the values collected in form.
//
// The ID is a fresh random UUID and the slug is derived from the title.
func New(kind Kind, form *Form, author string, now time.Time) *Posting {
	values := form.Values()
	title := Title(kind, values)
	now = now.UTC()

	return &Posting{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Slug:      slug.Make(title),
		Fields:    values,
		Approval:  ApprovalPending,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Title derives a display title from the posting fields.
//
// Jobs and internships read "<role> at <company_name>", exams read
// "<exam_name> (<conducting_body>)". Missing parts are dropped, and a generic
// title is used when nothing identifying is set.
func Title(kind Kind, fields map[string]string) string {
	switch kind {
	case KindJob, KindInternship:
		role, company := fields["role"], fields["company_name"]
		switch {
		case role != "" && company != "":
			return role + " at " + company
		case role != "":
			return role
		case company != "":
			return company + " " + kind.Label()
		}
	case KindExam:
		name, body := fields["exam_name"], fields["conducting_body"]
		switch {
		case name != "" && body != "":
			return name + " (" + body + ")"
		case name != "":
			return name
		}
	}
	return "Untitled " + kind.Label() + " posting"
}
