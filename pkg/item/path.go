package item

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"
)

// Path is a parsed dotted path.
type Path []string

// ParsePath splits a dotted path. The empty string is the root.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String joins the path back with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Join returns a new path with q appended. p is never modified.
func (p Path) Join(q Path) Path {
	out := make(Path, 0, len(p)+len(q))
	out = append(out, p...)
	return append(out, q...)
}

// Index returns a new path with the sequence index i appended.
func (p Path) Index(i int) Path {
	return p.Join(Path{strconv.Itoa(i)})
}

// Get resolves a dotted path against root. Missing segments (and nil values) yield def.
func Get(root any, path string, def any) any {
	return GetPath(root, ParsePath(path), def)
}

// GetPath is Get with a parsed path.
func GetPath(root any, p Path, def any) any {
	cur := root
	for _, seg := range p {
		next, ok := child(cur, seg)
		if !ok {
			return def
		}
		cur = next
	}
	if cur == nil {
		return def
	}
	return cur
}

func child(cur any, seg string) (any, bool) {
	switch c := cur.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := c[seg]
		return v, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}

	rv := reflect.ValueOf(cur)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// Set writes v at path under root and returns the (possibly new) root.
// Intermediate containers are created as maps. A nil v deletes a map key.
func Set(root any, path string, v any) any {
	return SetPath(root, ParsePath(path), v)
}

// SetPath is Set with a parsed path.
func SetPath(root any, p Path, v any) any {
	if len(p) == 0 {
		return v
	}
	seg, rest := p[0], p[1:]

	switch c := root.(type) {
	case map[string]any:
		if len(rest) == 0 {
			if v == nil {
				delete(c, seg)
			} else {
				c[seg] = v
			}
			return c
		}
		existing, ok := c[seg]
		if !ok && v == nil {
			return c
		}
		c[seg] = SetPath(existing, rest, v)
		return c
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 {
			return c
		}
		if i >= len(c) {
			if v == nil {
				return c
			}
			c = append(c, make([]any, i-len(c)+1)...)
		}
		if len(rest) == 0 {
			c[i] = v
		} else {
			c[i] = SetPath(c[i], rest, v)
		}
		return c
	case nil:
		if v == nil {
			return nil
		}
		return SetPath(map[string]any{}, p, v)
	}

	if g, ok := generic(root); ok {
		return SetPath(g, p, v)
	}
	if v == nil {
		return root
	}
	// Scalars in the way are replaced by a container.
	return SetPath(map[string]any{}, p, v)
}

// generic converts typed maps and slices into map[string]any / []any so they can be written.
func generic(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// IsMissing reports whether v counts as absent for a required field:
// nil, the empty string, or an empty sequence.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() == 0
	}
	return false
}

// HasValue reports whether v produces visible output in review: a defined non-empty
// scalar, or a non-empty sequence or map.
func HasValue(v any) bool {
	if IsMissing(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return rv.Len() > 0
	}
	return true
}

// Elements returns a fresh []any holding the elements of a sequence value.
// Anything that is not a sequence yields an empty slice.
func Elements(v any) []any {
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		copy(out, s)
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{}
	}
	g, _ := generic(v)
	return g.([]any)
}

// Len returns the length of a sequence value, 0 for anything else.
func Len(v any) int {
	if s, ok := v.([]any); ok {
		return len(s)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	return 0
}

// Same is the shallow identity check used to skip redundant re-derivations.
// Scalars compare by value; maps and sequences by backing storage and length.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice:
		if ra.Len() != rb.Len() {
			return false
		}
		return ra.Len() == 0 || ra.Pointer() == rb.Pointer()
	case reflect.Func:
		return false
	}
	if !ra.Type().Comparable() {
		return false
	}
	return a == b
}

// Clone deep-copies an item.
func Clone(v any) any {
	return deepcopy.Copy(v)
}
