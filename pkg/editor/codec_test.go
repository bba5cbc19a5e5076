package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwizard/pkg/editor"
)

func sampleItem() map[string]any {
	return map[string]any{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata": map[string]any{
			"name":   "web",
			"labels": map[string]any{"tier": "frontend"},
		},
		"spec": map[string]any{
			"replicas": 3,
			"ratio":    1.5,
			"paused":   false,
			"code":     "007",
			"containers": []any{
				map[string]any{"name": "nginx", "ports": []any{80, 443}},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []editor.Format{editor.FormatYAML, editor.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			in := sampleItem()

			text, err := editor.ObjectToText(in, format)
			require.NoError(t, err)

			out, err := editor.TextToObject(text)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestTextToObject_Empty(t *testing.T) {
	v, err := editor.TextToObject("   \n")
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)

	v, err = editor.TextToObject("null")
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)
}

func TestTextToObject_MultiDocument(t *testing.T) {
	v, err := editor.TextToObject("kind: A\n---\nkind: B\n")
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"kind": "A"},
		map[string]any{"kind": "B"},
	}, v)
}

func TestTextToObject_FlowYAMLIsNotMistakenForJSON(t *testing.T) {
	v, err := editor.TextToObject("{name: app, replicas: 2}")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "app", "replicas": 2}, v)
}

func TestTextToObject_ParseErrorYieldsEmptyObject(t *testing.T) {
	v, err := editor.TextToObject("a: 1\nb: c: d\n")
	assert.Equal(t, map[string]any{}, v)

	var perr *editor.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.NotEmpty(t, perr.Message)
	assert.NotContains(t, perr.Message, "yaml:")
}

func TestTextToObject_ParseErrorYieldsEmptySequence(t *testing.T) {
	v, err := editor.TextToObject("[1, 2,,]")
	assert.Error(t, err)
	assert.Equal(t, []any{}, v)
}

func TestTextToObject_RejectsContentAfterJSONValue(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		empty any
	}{
		{"second object", "{\"a\": 1}\n{\"b\": 2}\n", map[string]any{}},
		{"trailing block mapping", "{\"a\": 1}\nb: 2\n", map[string]any{}},
		{"sequence then mapping", "[1, 2]\nfoo: bar\n", []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := editor.TextToObject(tt.text)
			assert.Equal(t, tt.empty, v)

			var perr *editor.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 2, perr.Line)
		})
	}
}

func TestRoundTrip_WholeFloatsComeBackAsInts(t *testing.T) {
	for _, format := range []editor.Format{editor.FormatYAML, editor.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			text, err := editor.ObjectToText(map[string]any{"x": 2.0, "y": 2.5}, format)
			require.NoError(t, err)

			out, err := editor.TextToObject(text)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"x": 2, "y": 2.5}, out)
		})
	}
}
