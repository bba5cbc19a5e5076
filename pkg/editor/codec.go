package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the text representation of the item.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseError is a raw-text parse failure with a best-effort line number.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ObjectToText renders an item in the given format.
// Floats with no fractional part are written as integers (2.0 becomes 2) and read back
// as int, so an item holding whole floats is not byte-for-byte stable across a round trip.
func ObjectToText(v any, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode json: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

// TextToObject parses YAML (possibly multi-document) or JSON text into an item.
// It never fails hard: on a parse error it returns an empty map (or an empty sequence when
// the text looks like one) together with a *ParseError.
func TextToObject(text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]any{}, nil
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if v, err := decodeJSON(trimmed); err == nil {
			return v, nil
		}
		// Flow-style YAML is not JSON; let the YAML decoder have the final word.
	}

	v, err := decodeYAML(text)
	if err != nil {
		return emptyFor(trimmed), err
	}
	return v, nil
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, jsonParseError(text, err)
	}
	// A second value after the first is not JSON; YAML reports it with a line number.
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Line: 1, Message: "unexpected content after JSON value", Err: err}
	}
	return normalize(v), nil
}

func decodeYAML(text string) (any, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, yamlParseError(err)
		}
		docs = append(docs, normalize(doc))
	}

	switch len(docs) {
	case 0:
		return map[string]any{}, nil
	case 1:
		if docs[0] == nil {
			return map[string]any{}, nil
		}
		return docs[0], nil
	}
	return docs, nil
}

func emptyFor(trimmed string) any {
	if strings.HasPrefix(trimmed, "[") || (strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "---")) {
		return []any{}
	}
	if strings.Contains(trimmed, "\n---") {
		return []any{}
	}
	return map[string]any{}
}

// normalize turns decoder output into the item shapes used everywhere else:
// map[string]any, []any, int, float64, string, bool.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 0); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	}
	return v
}

var lineRe = regexp.MustCompile(`line (\d+)`)

func yamlParseError(err error) *ParseError {
	msg := err.Error()
	line := 1
	if m := lineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n
		}
	}
	msg = strings.TrimPrefix(msg, "yaml: ")
	msg = strings.TrimPrefix(msg, "unmarshal errors:\n")
	msg = strings.TrimSpace(lineRe.ReplaceAllString(msg, ""))
	msg = strings.TrimSpace(strings.TrimPrefix(msg, ":"))
	return &ParseError{Line: line, Message: msg, Err: err}
}

func jsonParseError(text string, err error) *ParseError {
	line := 1
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset := int(syntaxErr.Offset)
		if offset > len(text) {
			offset = len(text)
		}
		line += strings.Count(text[:offset], "\n")
	}
	return &ParseError{Line: line, Message: err.Error(), Err: err}
}
