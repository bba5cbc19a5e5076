/*
Package dsl provides a fluent Go builder for wizard steps.

It is the programmatic counterpart of definition files: steps, fields, sections and
arrays are declared in code and compiled into form components.

Example usage:

	b := dsl.New()

	b.Add("details").
		Label("Details").
		Field("name", dsl.Label("Name"), dsl.Required(), dsl.Validate(validators.KubernetesResourceName))

	b.Add("containers").
		Label("Containers").
		Array(dsl.Array("containers", []form.Component{
			dsl.Field("image", dsl.Required()),
		}, dsl.DisallowEmpty()))

	steps, err := b.Build()
*/
package dsl
