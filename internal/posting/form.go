package posting

import (
	"sort"
	"strings"
)

// Form holds the field values entered into a hosting form.
//
// Values are trimmed on write. The zero value is ready to use.
type Form struct {
	values map[string]string
}

// NewForm creates an empty [Form].
func NewForm() *Form {
	return &Form{values: make(map[string]string)}
}

// Set stores value under key. An empty (after trimming) value clears the key.
func (f *Form) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(f.values, key)
		return
	}
	f.values[key] = value
}

// Get returns the value stored under key, or "".
func (f *Form) Get(key string) string {
	return f.values[key]
}

// Values returns a copy of all stored values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// FieldErrors maps a field key to a human-readable message.
type FieldErrors map[string]string

// Keys returns the failing field keys in sorted order.
func (fe FieldErrors) Keys() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error joins the field errors into a single line, so FieldErrors can be
// wrapped and returned as an error.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, k := range fe.Keys() {
		parts = append(parts, k+" "+fe[k])
	}
	return strings.Join(parts, "; ")
}
