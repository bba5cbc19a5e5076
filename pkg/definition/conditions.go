package definition

import (
	"reflect"

	"github.com/aretw0/formwizard/internal/dto"
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/item"
)

func operators(c *dto.Condition) int {
	n := 0
	if c.Equals != nil {
		n++
	}
	if c.NotEquals != nil {
		n++
	}
	if c.In != nil {
		n++
	}
	if c.Empty {
		n++
	}
	if c.NotEmpty {
		n++
	}
	return n
}

// hiddenFunc compiles a condition evaluated against the bound item.
func hiddenFunc(c *dto.Condition) domain.HiddenFunc {
	if c == nil {
		return nil
	}
	cond := *c
	path := item.ParsePath(cond.Path)
	return func(bound any) bool {
		v := item.GetPath(bound, path, nil)
		switch {
		case cond.Equals != nil:
			return looseEqual(v, cond.Equals)
		case cond.NotEquals != nil:
			return !looseEqual(v, cond.NotEquals)
		case cond.In != nil:
			for _, candidate := range cond.In {
				if looseEqual(v, candidate) {
					return true
				}
			}
			return false
		case cond.Empty:
			return !item.HasValue(v)
		case cond.NotEmpty:
			return item.HasValue(v)
		}
		return false
	}
}

// looseEqual compares decoded values; numbers compare by value whatever their Go type.
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	fa, okA := number(a)
	fb, okB := number(b)
	return okA && okB && fa == fb
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
