// Package i18n holds the localization table used by the wizard: a flat mapping of
// label keys to strings and format functions. It carries no logic beyond lookups.
package i18n

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Strings is the localization table.
type Strings struct {
	Required     string `mapstructure:"required"`
	UnknownError string `mapstructure:"unknown_error"`

	ReviewLabel string `mapstructure:"review_label"`
	NextText    string `mapstructure:"next"`
	BackText    string `mapstructure:"back"`
	CancelText  string `mapstructure:"cancel"`
	SubmitText  string `mapstructure:"submit"`
	Submitting  string `mapstructure:"submitting"`

	FixValidationErrors         string `mapstructure:"fix_validation_errors"`
	FixEditorValidationErrors   string `mapstructure:"fix_editor_validation_errors"`
	WaitForEditorValidation     string `mapstructure:"wait_for_editor_validation"`
	ExpandToFixValidationErrors string `mapstructure:"expand_to_fix_validation_errors"`

	// SyntaxErrorFormat is a printf format taking the line number and the parser message.
	SyntaxErrorFormat string `mapstructure:"syntax_error_format"`

	// MaxLengthFormat is a printf format taking the character limit.
	MaxLengthFormat          string `mapstructure:"max_length_format"`
	LowercaseAlphaNumDashDot string `mapstructure:"lowercase_alphanumeric_dash_dot"`
	LowercaseAlphaNumDash    string `mapstructure:"lowercase_alphanumeric_dash"`
	StartAlphaNumeric        string `mapstructure:"start_alphanumeric"`
	StartAlphabetic          string `mapstructure:"start_alphabetic"`
	EndAlphaNumeric          string `mapstructure:"end_alphanumeric"`
	InvalidResourceName      string `mapstructure:"invalid_resource_name"`
}

// Default returns the built-in English table.
func Default() *Strings {
	return &Strings{
		Required:     "Required",
		UnknownError: "Unknown error",

		ReviewLabel: "Review",
		NextText:    "Next",
		BackText:    "Back",
		CancelText:  "Cancel",
		SubmitText:  "Submit",
		Submitting:  "Submitting",

		FixValidationErrors:         "Please fix validation errors",
		FixEditorValidationErrors:   "Please fix editor syntax errors",
		WaitForEditorValidation:     "Waiting for editor validation to complete",
		ExpandToFixValidationErrors: "Expand to fix validation errors",

		SyntaxErrorFormat: "Syntax error on line %d: %s",

		MaxLengthFormat:          "This value can contain at most %d characters",
		LowercaseAlphaNumDashDot: "This value can only contain lowercase alphanumeric characters or '-' or '.'",
		LowercaseAlphaNumDash:    "This value can only contain lowercase alphanumeric characters or '-'",
		StartAlphaNumeric:        "This value must start with an alphanumeric character",
		StartAlphabetic:          "This value must start with an alphabetic character",
		EndAlphaNumeric:          "This value must end with an alphanumeric character",
		InvalidResourceName:      "This value must be dot-separated labels of lowercase alphanumeric characters or '-'",
	}
}

// SyntaxError formats a document parse failure.
func (s *Strings) SyntaxError(line int, message string) string {
	return fmt.Sprintf(s.SyntaxErrorFormat, line, message)
}

// MaxLength formats a length-limit failure.
func (s *Strings) MaxLength(limit int) string {
	return fmt.Sprintf(s.MaxLengthFormat, limit)
}

// Load overlays values on top of the default table. Unknown keys are rejected.
func Load(values map[string]any) (*Strings, error) {
	s := Default()
	if len(values) == 0 {
		return s, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      s,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build strings decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return nil, fmt.Errorf("invalid strings table: %w", err)
	}
	return s, nil
}

// LoadYAML parses a YAML mapping of keys to strings and overlays it on the defaults.
func LoadYAML(data []byte) (*Strings, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse strings file: %w", err)
	}
	return Load(values)
}
