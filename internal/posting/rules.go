package posting

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the accepted format for date fields.
const DateLayout = "2006-01-02"

// Rule names a single check applied to a field value.
type Rule string

// Supported rules. Rules other than [RuleRequired] are skipped for empty values.
const (
	RuleRequired   Rule = "required"
	RuleURL        Rule = "url"
	RuleDate       Rule = "date"
	RuleFutureDate Rule = "future_date"
	RuleNumber     Rule = "number"
	RuleEmail      Rule = "email"
)

// ParseRule validates a rule name read from a manifest.
func ParseRule(s string) (Rule, error) {
	r := Rule(strings.TrimSpace(strings.ToLower(s)))
	switch r {
	case RuleRequired, RuleURL, RuleDate, RuleFutureDate, RuleNumber, RuleEmail:
		return r, nil
	}
	return "", fmt.Errorf("unknown field rule: %q", s)
}

// Field is one input of a form section.
type Field struct {
	// Key is the form key the value is stored under.
	Key string `yaml:"key"`

	// Label is the prompt shown to the user.
	Label string `yaml:"label"`

	// Rules are applied in order; the first failure wins.
	Rules []Rule `yaml:"rules"`
}

// Required reports whether the field carries [RuleRequired].
func (f Field) Required() bool {
	for _, r := range f.Rules {
		if r == RuleRequired {
			return true
		}
	}
	return false
}

// ValidateFields checks every field against the values in form.
// now is the reference time for [RuleFutureDate].
func ValidateFields(fields []Field, form *Form, now time.Time) FieldErrors {
	errs := FieldErrors{}
	for _, f := range fields {
		if msg := checkField(f, form.Get(f.Key), now); msg != "" {
			errs[f.Key] = msg
		}
	}
	return errs
}

func checkField(f Field, value string, now time.Time) string {
	if value == "" {
		if f.Required() {
			return "is required"
		}
		return ""
	}

	for _, r := range f.Rules {
		if msg := checkRule(r, value, now); msg != "" {
			return msg
		}
	}
	return ""
}

func checkRule(r Rule, value string, now time.Time) string {
	switch r {
	case RuleURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "must be a valid http(s) URL"
		}
	case RuleDate:
		if _, err := time.Parse(DateLayout, value); err != nil {
			return "must be a date (YYYY-MM-DD)"
		}
	case RuleFutureDate:
		d, err := time.Parse(DateLayout, value)
		if err != nil {
			return "must be a date (YYYY-MM-DD)"
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			return "must not be in the past"
		}
	case RuleNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n < 0 {
			return "must be a non-negative number"
		}
	case RuleEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return "must be a valid email address"
		}
	}
	return ""
}
