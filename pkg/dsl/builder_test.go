package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/dsl"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/validators"
)

func TestBuilder_SimpleWizard(t *testing.T) {
	b := dsl.New()

	b.Add("details").
		Label("Details").
		Field("name", dsl.Label("Name"), dsl.Path("metadata.name"), dsl.Required(),
			dsl.Validate(validators.KubernetesResourceName))

	b.Add("containers").
		Label("Containers").
		Array(dsl.Array("containers", []form.Component{
			dsl.Field("image", dsl.Required()),
		}, dsl.DisallowEmpty(), dsl.NewValue(func() any { return map[string]any{"image": ""} })))

	assert.Same(t, b.Add("details"), b.Add("details"), "Add returns the existing step")

	steps, err := b.Build()
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "details", steps[0].ID)
	assert.Equal(t, "Details", steps[0].Label)

	tree, err := form.NewTree(steps, nil)
	require.NoError(t, err)

	require.NoError(t, tree.SetValue("metadata.name", "Not_Valid"))
	f, err := tree.Field("metadata.name")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Validation.Error)

	require.NoError(t, tree.SetValue("metadata.name", "web"))
	f, _ = tree.Field("metadata.name")
	assert.Empty(t, f.Validation.Error)

	img, err := tree.Field("containers.0.image")
	require.NoError(t, err)
	assert.Equal(t, "Required", img.Validation.Error)
}

func TestBuilder_Empty(t *testing.T) {
	_, err := dsl.New().Build()
	assert.ErrorIs(t, err, domain.ErrNoSteps)
}

func TestValidate_Chains(t *testing.T) {
	f := dsl.Field("name",
		dsl.Validate(validators.Tag("min=3")),
		dsl.Validate(validators.KubernetesLabelRFC1123),
	)
	assert.NotEmpty(t, f.Validation("ab", nil))
	assert.NotEmpty(t, f.Validation("ABC", nil))
	assert.Empty(t, f.Validation("abc", nil))
}

func TestValidate_UnknownTagSurfacesAsFieldError(t *testing.T) {
	b := dsl.New()
	b.Add("a").Field("name", dsl.Validate(validators.Tag("bogus")))
	steps, err := b.Build()
	require.NoError(t, err)

	var tree *form.Tree
	require.NotPanics(t, func() {
		tree, err = form.NewTree(steps, map[string]any{"name": "web"})
	})
	require.NoError(t, err)

	f, err := tree.Field("name")
	require.NoError(t, err)
	assert.Contains(t, f.Validation.Error, `invalid validation tag "bogus"`)
}

func TestDisplayAndSection(t *testing.T) {
	b := dsl.New()
	b.Add("a").
		Display("banner", dsl.KeepVisible()).
		With(dsl.Section("meta", "Metadata", "metadata", dsl.Field("ns", dsl.Default("default"))))

	steps, err := b.Build()
	require.NoError(t, err)
	tree, err := form.NewTree(steps, nil)
	require.NoError(t, err)

	st, _ := tree.Step("a")
	assert.True(t, st.HasInputs)
	ns, err := tree.Field("metadata.ns")
	require.NoError(t, err)
	assert.Equal(t, "default", ns.Value)
}
