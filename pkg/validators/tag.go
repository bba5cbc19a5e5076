package validators

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/item"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// varTag runs tag against value and returns the first failing check, or nil when the
// value passes. The validator panics on unknown tags; that is reported as an error.
func varTag(value any, tag string) (fe validator.FieldError, err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, err = nil, fmt.Errorf("invalid validation tag %q: %v", tag, r)
		}
	}()
	verr := engine().Var(value, tag)
	if verr == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(verr, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0], nil
	}
	return nil, verr
}

// Tag builds a validator from a go-playground/validator tag such as "email" or
// "min=3,max=20". Missing values pass so the field's required flag stays in charge.
// An unknown tag reports itself as the field error.
func Tag(tag string) domain.ValidationFunc {
	return func(value any, _ any) string {
		if item.IsMissing(value) {
			return ""
		}
		fe, err := varTag(value, tag)
		switch {
		case err != nil:
			return err.Error()
		case fe == nil:
			return ""
		case fe.Param() != "":
			return fmt.Sprintf("This value must satisfy '%s=%s'", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("This value must satisfy '%s'", fe.Tag())
	}
}

// ValidTag reports whether tag is understood by the validator engine.
func ValidTag(tag string) error {
	// Probing with a harmless value surfaces an unknown tag early.
	_, err := varTag("", tag)
	return err
}
