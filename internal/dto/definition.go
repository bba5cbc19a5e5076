package dto

// Definition is the decoded header and step list of a wizard definition file.
// It uses "mapstructure" tags to match the snake_case keys of the YAML/JSON file.
type Definition struct {
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	SubmitText  string `json:"submit_text" mapstructure:"submit_text"`

	Steps []Step `json:"steps" mapstructure:"steps"`

	// Strings overlays the localization table.
	Strings map[string]any `json:"strings" mapstructure:"strings"`
}

type Step struct {
	ID         string      `json:"id" mapstructure:"id"`
	Label      string      `json:"label" mapstructure:"label"`
	HiddenWhen *Condition  `json:"hidden_when" mapstructure:"hidden_when"`
	Inputs     []Component `json:"inputs" mapstructure:"inputs"`
}

// Component is a field, display, section or array entry.
type Component struct {
	Type  string `json:"type" mapstructure:"type"`
	ID    string `json:"id" mapstructure:"id"`
	Path  string `json:"path" mapstructure:"path"`
	Label string `json:"label" mapstructure:"label"`

	Required        bool       `json:"required" mapstructure:"required"`
	Default         any        `json:"default" mapstructure:"default"`
	Validate        []string   `json:"validate" mapstructure:"validate"`
	HiddenWhen      *Condition `json:"hidden_when" mapstructure:"hidden_when"`
	DisableAutohide bool       `json:"disable_autohide" mapstructure:"disable_autohide"`

	// Section and array children.
	Inputs []Component `json:"inputs" mapstructure:"inputs"`

	// Array only.
	NewValue      any    `json:"new_value" mapstructure:"new_value"`
	DisallowEmpty bool   `json:"disallow_empty" mapstructure:"disallow_empty"`
	Summary       string `json:"summary" mapstructure:"summary"`
}

// Condition tests one path of the bound item.
// Exactly one of Equals, NotEquals, In, Empty or NotEmpty is expected.
type Condition struct {
	Path      string `json:"path" mapstructure:"path"`
	Equals    any    `json:"equals" mapstructure:"equals"`
	NotEquals any    `json:"not_equals" mapstructure:"not_equals"`
	In        []any  `json:"in" mapstructure:"in"`
	Empty     bool   `json:"empty" mapstructure:"empty"`
	NotEmpty  bool   `json:"not_empty" mapstructure:"not_empty"`
}
