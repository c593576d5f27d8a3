package posting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateFields(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rules   []Rule
		value   string
		wantErr string
	}{
		{name: "required missing", rules: []Rule{RuleRequired}, value: "", wantErr: "is required"},
		{name: "required present", rules: []Rule{RuleRequired}, value: "x"},
		{name: "optional empty skips rules", rules: []Rule{RuleURL}, value: ""},
		{name: "url ok", rules: []Rule{RuleURL}, value: "https://careers.example.com/apply"},
		{name: "url without scheme", rules: []Rule{RuleURL}, value: "careers.example.com", wantErr: "must be a valid http(s) URL"},
		{name: "url ftp", rules: []Rule{RuleURL}, value: "ftp://example.com/x", wantErr: "must be a valid http(s) URL"},
		{name: "date ok", rules: []Rule{RuleDate}, value: "2020-01-01"},
		{name: "date malformed", rules: []Rule{RuleDate}, value: "01/02/2026", wantErr: "must be a date (YYYY-MM-DD)"},
		{name: "future date today", rules: []Rule{RuleFutureDate}, value: "2026-10-18"},
		{name: "future date tomorrow", rules: []Rule{RuleFutureDate}, value: "2026-10-19"},
		{name: "future date past", rules: []Rule{RuleFutureDate}, value: "2026-10-17", wantErr: "must not be in the past"},
		{name: "future date malformed", rules: []Rule{RuleFutureDate}, value: "soon", wantErr: "must be a date (YYYY-MM-DD)"},
		{name: "number ok", rules: []Rule{RuleNumber}, value: "12.5"},
		{name: "number negative", rules: []Rule{RuleNumber}, value: "-1", wantErr: "must be a non-negative number"},
		{name: "number text", rules: []Rule{RuleNumber}, value: "ten", wantErr: "must be a non-negative number"},
		{name: "email ok", rules: []Rule{RuleEmail}, value: "tpo@college.edu"},
		{name: "email bad", rules: []Rule{RuleEmail}, value: "tpo-at-college", wantErr: "must be a valid email address"},
		{name: "first failing rule wins", rules: []Rule{RuleRequired, RuleDate, RuleFutureDate}, value: "2001-01-01", wantErr: "must not be in the past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewForm()
			form.Set("f", tt.value)

			errs := ValidateFields([]Field{{Key: "f", Label: "F", Rules: tt.rules}}, form, now)

			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.wantErr, errs["f"])
		})
	}
}

func TestFieldErrors_Error(t *testing.T) {
	errs := FieldErrors{"deadline": "must not be in the past", "apply_link": "is required"}

	assert.Equal(t, []string{"apply_link", "deadline"}, errs.Keys())
	assert.Equal(t, "apply_link is required; deadline must not be in the past", errs.Error())
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule(" Future_Date ")
	assert.NoError(t, err)
	assert.Equal(t, RuleFutureDate, r)

	_, err = ParseRule("phone")
	assert.Error(t, err)
}
