package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/editor"
	"github.com/aretw0/formwizard/pkg/i18n"
)

func TestEditor_StatusFollowsParse(t *testing.T) {
	e := editor.New()
	assert.Equal(t, domain.EditorSuccess, e.Status())

	_, ok := e.Parse("a: 1\nb: c: d\n")
	assert.False(t, ok)
	assert.Equal(t, domain.EditorFailure, e.Status())
	assert.Equal(t, 2, e.Err().Line)
	assert.Contains(t, e.Message(), "line 2")

	v, ok := e.Parse("a: 1\n")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"a": 1}, v)
	assert.Equal(t, domain.EditorSuccess, e.Status())
	assert.Nil(t, e.Err())
	assert.Empty(t, e.Message())
}

func TestEditor_PendingFromHost(t *testing.T) {
	e := editor.New(editor.WithFormat(editor.FormatJSON), editor.WithStrings(i18n.Default()))
	e.SetStatus(domain.EditorPending)
	assert.Equal(t, domain.EditorPending, e.Status())

	text, err := e.Render(map[string]any{"a": 1})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, text)
}

func TestEditor_TrailingJSONIsAFailure(t *testing.T) {
	e := editor.New()

	v, ok := e.Parse("{\"a\": 1}\n{\"b\": 2}\n")
	assert.False(t, ok)
	assert.Equal(t, map[string]any{}, v)
	assert.Equal(t, domain.EditorFailure, e.Status())
	assert.Contains(t, e.Message(), "line 2")
}
