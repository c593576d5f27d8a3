package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// flowsFile represents the raw YAML structure of a flows.yaml manifest.
type flowsFile struct {
	Flows []struct {
		Kind     string `yaml:"kind"`
		Sections []struct {
			Name   string `yaml:"name"`
			Label  string `yaml:"label"`
			Icon   string `yaml:"icon"`
			Fields []struct {
				Key   string   `yaml:"key"`
				Label string   `yaml:"label"`
				Rules []string `yaml:"rules"`
			} `yaml:"fields"`
		} `yaml:"sections"`
	} `yaml:"flows"`
}

// ReadYAMLFromFile reads and parses a YAML flow manifest.
//
// The expected format is:
//
//	flows:
//	  - kind: exam
//	    sections:
//	      - name: details
//	        label: Exam Details
//	        icon: "📘"
//	        fields:
//	          - key: exam_name
//	            label: Exam name
//	            rules: [required]
func ReadYAMLFromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return ReadYAMLFromBytes(data)
}

// ReadYAMLFromBytes parses a YAML flow manifest into the same entries the CSV
// reader produces.
func ReadYAMLFromBytes(data []byte) (*Manifest, error) {
	var raw flowsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var entries []FieldEntry
	for fi, flow := range raw.Flows {
		for si, section := range flow.Sections {
			if len(section.Fields) == 0 {
				return nil, fmt.Errorf("flow %d section %d (%s) has no fields", fi, si, section.Name)
			}
			for _, field := range section.Fields {
				entry := FieldEntry{
					Kind:       flow.Kind,
					Section:    section.Name,
					Label:      section.Label,
					Icon:       section.Icon,
					Field:      field.Key,
					FieldLabel: field.Label,
					Rules:      field.Rules,
				}
				if err := entry.validate(); err != nil {
					return nil, fmt.Errorf("flow %d section %d: %w", fi, si, err)
				}
				entries = append(entries, entry)
			}
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest contains no field entries")
	}

	return &Manifest{Entries: entries}, nil
}
