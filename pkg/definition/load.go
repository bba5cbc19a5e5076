package definition

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/formwizard/internal/dto"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/i18n"
)

// Definition is a compiled wizard definition.
type Definition struct {
	Title       string
	Description string
	SubmitText  string
	Strings     *i18n.Strings
	Steps       []*form.Step
}

// Parse decodes and compiles a definition. YAML is accepted, and so is JSON, which
// is a subset of it.
func Parse(data []byte) (*Definition, error) {
	raw, err := decode(data)
	if err != nil {
		return nil, err
	}
	return Compile(raw)
}

// LoadFile reads and parses a definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func decode(data []byte) (*dto.Definition, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}

	var raw dto.Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(values); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return &raw, nil
}
