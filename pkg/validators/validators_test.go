package validators_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwizard/pkg/i18n"
	"github.com/aretw0/formwizard/pkg/validators"
)

func TestKubernetesResourceName(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"my-app.v1", ""},
		{"0web", ""},
		{"My-App", "This value can only contain lowercase alphanumeric characters or '-' or '.'"},
		{"app_1", "This value can only contain lowercase alphanumeric characters or '-' or '.'"},
		{"-app", "This value must start with an alphanumeric character"},
		{".app", "This value must start with an alphanumeric character"},
		{"app-", "This value must end with an alphanumeric character"},
		{"app.", "This value must end with an alphanumeric character"},
		{"app..v1", "This value must be dot-separated labels of lowercase alphanumeric characters or '-'"},
		{strings.Repeat("a", 254), "This value can contain at most 253 characters"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validators.KubernetesResourceName(tt.value, nil), "value %q", tt.value)
	}
}

func TestKubernetesLabels(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(any, any) string
		value any
		want  string
	}{
		{"1123 leading digit", validators.KubernetesLabelRFC1123, "1abc", ""},
		{"1123 dot", validators.KubernetesLabelRFC1123, "a.b", "This value can only contain lowercase alphanumeric characters or '-'"},
		{"1123 trailing dash", validators.KubernetesLabelRFC1123, "abc-", "This value must end with an alphanumeric character"},
		{"1123 too long", validators.KubernetesLabelRFC1123, strings.Repeat("a", 64), "This value can contain at most 63 characters"},
		{"1035 leading digit", validators.KubernetesLabelRFC1035, "1abc", "This value must start with an alphabetic character"},
		{"1035 valid", validators.KubernetesLabelRFC1035, "abc-1", ""},
		{"1035 uppercase", validators.KubernetesLabelRFC1035, "Abc", "This value can only contain lowercase alphanumeric characters or '-'"},
		{"non string", validators.KubernetesLabelRFC1035, 42, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.value, nil))
		})
	}
}

func TestKubernetes_LocalizedMessages(t *testing.T) {
	s, err := i18n.Load(map[string]any{
		"max_length_format":  "No máximo %d caracteres",
		"start_alphanumeric": "Deve começar com letra ou dígito",
	})
	require.NoError(t, err)
	k := validators.NewKubernetes(s)

	assert.Equal(t, "No máximo 63 caracteres", k.LabelRFC1123(strings.Repeat("a", 64), nil))
	assert.Equal(t, "Deve começar com letra ou dígito", k.ResourceName("-web", nil))
	assert.Empty(t, k.ResourceName("web", nil))
}

func TestTag(t *testing.T) {
	email := validators.Tag("email")
	assert.Empty(t, email("dev@example.com", nil))
	assert.Equal(t, "This value must satisfy 'email'", email("nope", nil))
	assert.Empty(t, email("", nil))

	length := validators.Tag("min=3")
	assert.Equal(t, "This value must satisfy 'min=3'", length("ab", nil))
}

func TestTag_UnknownTagIsAFieldError(t *testing.T) {
	bogus := validators.Tag("definitely_not_a_tag")

	var msg string
	require.NotPanics(t, func() { msg = bogus("value", nil) })
	assert.Contains(t, msg, `invalid validation tag "definitely_not_a_tag"`)
	assert.Empty(t, bogus(nil, nil), "missing values never reach the engine")
}

func TestValidTag(t *testing.T) {
	assert.NoError(t, validators.ValidTag("email"))
	assert.Error(t, validators.ValidTag("definitely_not_a_tag"))
}

func TestChain(t *testing.T) {
	v := validators.Chain(nil, validators.Tag("min=3"), validators.KubernetesLabelRFC1123)
	assert.NotEmpty(t, v("ab", nil))
	assert.NotEmpty(t, v("ABC", nil))
	assert.Empty(t, v("abc", nil))
}
