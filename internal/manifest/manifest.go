// Package manifest reads posting flow manifests.
//
// A flow manifest describes, per posting kind, the ordered form sections a
// wizard walks through and the fields each section collects. It lets a
// placement cell add or reorder fields without rebuilding the tool.
//
// CSV format (one row per field):
//
//	kind,section,label,icon,field,field_label,rules
//	job,company,Company Details,🏢,company_name,Company name,required
//	job,company,Company Details,🏢,company_website,Website,url
//	job,application,Application,📝,deadline,Deadline,required|future_date
//
// Rows are ordered by wizard sequence: a section's position is the position of
// its first row, and fields keep their row order. The label and icon of a
// section are taken from its first row. The same format is accepted as YAML
// (see [ReadYAMLFromBytes]).
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FieldEntry represents a single field row in a flow manifest.
type FieldEntry struct {
	// Kind is the posting kind the row belongs to (e.g., "job").
	Kind string

	// Section is the section (wizard step) name.
	Section string

	// Label and Icon are display metadata for the section.
	Label string
	Icon  string

	// Field is the form key the value is stored under.
	Field string

	// FieldLabel is the prompt shown for the field. Defaults to Field.
	FieldLabel string

	// Rules are the raw rule names (e.g., "required", "future_date").
	Rules []string
}

// Manifest holds all field entries parsed from a manifest file.
type Manifest struct {
	// Entries are the field entries in wizard order.
	Entries []FieldEntry
}

// ReadFromFile reads a flow manifest, choosing the format by file extension.
// ".csv" is parsed as CSV, ".yaml" and ".yml" as YAML.
func ReadFromFile(path string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAMLFromFile(path)
	case ".csv":
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	return readFromReader(f)
}

// ReadFromString parses a CSV flow manifest from a string.
func ReadFromString(data string) (*Manifest, error) {
	return readFromReader(strings.NewReader(data))
}

func readFromReader(r io.Reader) (*Manifest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest header: %w", err)
	}

	colIndex := buildColumnIndex(header)
	if err := validateColumns(colIndex); err != nil {
		return nil, err
	}

	var entries []FieldEntry
	lineNum := 1 // header was line 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest line %d: %w", lineNum, err)
		}

		entry := FieldEntry{
			Kind:       getField(record, colIndex, "kind"),
			Section:    getField(record, colIndex, "section"),
			Label:      getField(record, colIndex, "label"),
			Icon:       getField(record, colIndex, "icon"),
			Field:      getField(record, colIndex, "field"),
			FieldLabel: getField(record, colIndex, "field_label"),
			Rules:      splitRules(getField(record, colIndex, "rules")),
		}

		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNum, err)
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest contains no field entries")
	}

	return &Manifest{Entries: entries}, nil
}

func (e *FieldEntry) validate() error {
	switch {
	case e.Kind == "":
		return fmt.Errorf("kind is required")
	case e.Section == "":
		return fmt.Errorf("section is required")
	case e.Field == "":
		return fmt.Errorf("field is required")
	}
	if e.FieldLabel == "" {
		e.FieldLabel = e.Field
	}
	return nil
}

// requiredColumns are the columns that must be present in the manifest CSV.
var requiredColumns = []string{"kind", "section", "field"}

func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}
	return index
}

func validateColumns(colIndex map[string]int) error {
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return fmt.Errorf("manifest missing required column: %s", col)
		}
	}
	return nil
}

func getField(record []string, colIndex map[string]int, column string) string {
	idx, ok := colIndex[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func splitRules(s string) []string {
	if s == "" {
		return nil
	}
	var rules []string
	for _, r := range strings.Split(s, "|") {
		if r = strings.TrimSpace(r); r != "" {
			rules = append(rules, r)
		}
	}
	return rules
}

// Kinds returns the unique kinds in manifest order.
func (m *Manifest) Kinds() []string {
	seen := make(map[string]bool)
	var kinds []string
	for _, e := range m.Entries {
		if !seen[e.Kind] {
			seen[e.Kind] = true
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

// Sections returns the unique section names for kind in manifest order.
func (m *Manifest) Sections(kind string) []string {
	seen := make(map[string]bool)
	var sections []string
	for _, e := range m.Entries {
		if e.Kind != kind || seen[e.Section] {
			continue
		}
		seen[e.Section] = true
		sections = append(sections, e.Section)
	}
	return sections
}

// EntriesFor returns the field entries of one section, in order.
func (m *Manifest) EntriesFor(kind, section string) []FieldEntry {
	var entries []FieldEntry
	for _, e := range m.Entries {
		if e.Kind == kind && e.Section == section {
			entries = append(entries, e)
		}
	}
	return entries
}
