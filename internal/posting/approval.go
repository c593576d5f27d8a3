package posting

import (
	"fmt"
	"strings"
)

// Approval is the review state of a submitted posting.
//
// Every posting starts [ApprovalPending]. The approval queue is the set of
// pending postings; an admin moves each to approved or rejected.
type Approval string

// Approval values as stored on disk.
const (
	ApprovalPending  Approval = "pending"
	ApprovalApproved Approval = "approved"
	ApprovalRejected Approval = "rejected"
)

// IsValid reports whether a is a known approval value.
func (a Approval) IsValid() bool {
	switch a {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// ParseApproval converts user input (case-insensitive) into an [Approval].
func ParseApproval(s string) (Approval, error) {
	a := Approval(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", fmt.Errorf("unknown approval status: %q", s)
	}
	return a, nil
}
