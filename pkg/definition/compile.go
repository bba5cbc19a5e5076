package definition

import (
	"fmt"
	"strings"

	"github.com/aretw0/formwizard/internal/dto"
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/dsl"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/i18n"
	"github.com/aretw0/formwizard/pkg/item"
	"github.com/aretw0/formwizard/pkg/validators"
)

const (
	TypeField   = "field"
	TypeDisplay = "display"
	TypeSection = "section"
	TypeArray   = "array"
)

// namedValidators are the validators a definition can refer to by name, with messages
// taken from the definition's strings table.
func namedValidators(s *i18n.Strings) map[string]domain.ValidationFunc {
	k := validators.NewKubernetes(s)
	return map[string]domain.ValidationFunc{
		"k8s-name":      k.ResourceName,
		"rfc1123-label": k.LabelRFC1123,
		"rfc1035-label": k.LabelRFC1035,
	}
}

type compiler struct {
	errs       CompileErrors
	validators map[string]domain.ValidationFunc
}

func (c *compiler) fail(path, format string, args ...any) {
	c.errs = append(c.errs, &CompileError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// Compile turns a decoded definition into form steps. Every problem is reported,
// not only the first one.
func Compile(raw *dto.Definition) (*Definition, error) {
	c := &compiler{}
	def := &Definition{
		Title:       raw.Title,
		Description: raw.Description,
		SubmitText:  raw.SubmitText,
		Strings:     i18n.Default(),
	}

	if raw.Strings != nil {
		s, err := i18n.Load(raw.Strings)
		if err != nil {
			c.fail("strings", "%v", err)
		} else {
			def.Strings = s
		}
	}

	c.validators = namedValidators(def.Strings)

	if len(raw.Steps) == 0 {
		c.fail("steps", "%v", domain.ErrNoSteps)
	}

	b := dsl.New()
	seen := make(map[string]bool, len(raw.Steps))
	for i, s := range raw.Steps {
		path := fmt.Sprintf("steps[%d]", i)
		switch {
		case s.ID == "":
			c.fail(path, "%v", domain.ErrEmptyStepID)
			continue
		case s.ID == domain.ReviewStepID:
			c.fail(path, "%q: %v", s.ID, domain.ErrReservedStepID)
			continue
		case seen[s.ID]:
			c.fail(path, "%q: %v", s.ID, domain.ErrDuplicateStep)
			continue
		}
		seen[s.ID] = true

		sb := b.Add(s.ID).Label(s.Label).HiddenWhen(c.condition(path+".hidden_when", s.HiddenWhen))
		sb.With(c.components(path+".inputs", s.Inputs)...)
	}

	if len(c.errs) > 0 {
		return nil, c.errs
	}
	steps, err := b.Build()
	if err != nil {
		return nil, err
	}
	def.Steps = steps
	return def, nil
}

func (c *compiler) condition(path string, cond *dto.Condition) domain.HiddenFunc {
	if cond == nil {
		return nil
	}
	if n := operators(cond); n != 1 {
		c.fail(path, "expected exactly one operator, got %d", n)
		return nil
	}
	return hiddenFunc(cond)
}

func (c *compiler) components(path string, raw []dto.Component) []form.Component {
	out := make([]form.Component, 0, len(raw))
	ids := make(map[string]bool, len(raw))
	for i, r := range raw {
		p := fmt.Sprintf("%s[%d]", path, i)
		if r.ID == "" {
			c.fail(p, "missing id")
			continue
		}
		if ids[r.ID] {
			c.fail(p, "duplicate input id %q", r.ID)
			continue
		}
		ids[r.ID] = true
		if comp := c.component(p, r); comp != nil {
			out = append(out, comp)
		}
	}
	return out
}

func (c *compiler) component(path string, r dto.Component) form.Component {
	typ := r.Type
	if typ == "" {
		typ = TypeField
	}

	if len(r.Inputs) > 0 && typ != TypeSection && typ != TypeArray {
		c.fail(path, "type %q cannot have inputs", typ)
	}
	if typ != TypeArray && (r.NewValue != nil || r.DisallowEmpty || r.Summary != "") {
		c.fail(path, "new_value, disallow_empty and summary only apply to arrays")
	}

	switch typ {
	case TypeField, TypeDisplay:
		opts := c.inputOptions(path, r)
		if typ == TypeDisplay {
			return dsl.Display(r.ID, opts...)
		}
		return dsl.Field(r.ID, opts...)

	case TypeSection:
		if r.Required || len(r.Validate) > 0 || r.Default != nil {
			c.fail(path, "sections cannot be required, validated or defaulted")
		}
		return &form.Section{
			ID:              r.ID,
			Label:           r.Label,
			Path:            r.Path,
			Hidden:          c.condition(path+".hidden_when", r.HiddenWhen),
			DisableAutohide: r.DisableAutohide,
			Children:        c.components(path+".inputs", r.Inputs),
		}

	case TypeArray:
		opts := []dsl.ArrayOption{dsl.Binding(c.inputOptions(path, r)...)}
		if r.NewValue != nil {
			v := r.NewValue
			opts = append(opts, dsl.NewValue(func() any { return item.Clone(v) }))
		}
		if r.DisallowEmpty {
			opts = append(opts, dsl.DisallowEmpty())
		}
		if r.Summary != "" {
			opts = append(opts, dsl.Summary(summary(r.Summary)))
		}
		return dsl.Array(r.ID, c.components(path+".inputs", r.Inputs), opts...)
	}

	c.fail(path, "unknown type %q", r.Type)
	return nil
}

func (c *compiler) inputOptions(path string, r dto.Component) []dsl.InputOption {
	opts := []dsl.InputOption{dsl.Label(r.Label)}
	if r.Path != "" {
		opts = append(opts, dsl.Path(r.Path))
	}
	if r.Required {
		opts = append(opts, dsl.Required())
	}
	if r.Default != nil {
		opts = append(opts, dsl.Default(r.Default))
	}
	if r.DisableAutohide {
		opts = append(opts, dsl.KeepVisible())
	}
	if hidden := c.condition(path+".hidden_when", r.HiddenWhen); hidden != nil {
		opts = append(opts, dsl.HiddenWhen(hidden))
	}

	var fns []domain.ValidationFunc
	for i, name := range r.Validate {
		fn, err := c.lookupValidator(name)
		if err != nil {
			c.fail(fmt.Sprintf("%s.validate[%d]", path, i), "%v", err)
			continue
		}
		fns = append(fns, fn)
	}
	if len(fns) > 0 {
		opts = append(opts, dsl.Validate(fns...))
	}
	return opts
}

func (c *compiler) lookupValidator(name string) (domain.ValidationFunc, error) {
	if tag, ok := strings.CutPrefix(name, "tag:"); ok {
		if err := validators.ValidTag(tag); err != nil {
			return nil, err
		}
		return validators.Tag(tag), nil
	}
	if fn, ok := c.validators[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown validator %q", name)
}

func summary(path string) func(element any, index int) string {
	p := item.ParsePath(path)
	return func(element any, index int) string {
		v := item.GetPath(element, p, nil)
		if !item.HasValue(v) {
			return fmt.Sprintf("#%d", index+1)
		}
		return fmt.Sprint(v)
	}
}
