/*
Package formwizard is a multi-step form wizard engine: it edits one structured document
(the "item") through a sequence of steps, each holding inputs bound to dotted paths of
the item.

Every input derives its value, its visibility and its validation error from the item on
each update pass. The results are aggregated bottom-up through sections, arrays and steps
so the engine always knows which steps have inputs, which have values and which carry a
validation error. Navigation is gated by those aggregates: Next refuses to leave a step
with an error (and makes its errors visible), and Submit is only offered on the final
review step when the whole form is valid.

# Concept

The form is declared as a list of steps, either in Go with the pkg/dsl builder or in a
YAML definition loaded by pkg/definition. The host owns the I/O: it calls SetValue,
Next, Back and Submit, and reads Steps, Fields, Review and Alerts to render the wizard.

# Usage

	steps, err := dsl.New().
		Add("general").Label("General").
		Field("name", dsl.Label("Name"), dsl.Required(), dsl.Validate(validators.KubernetesResourceName)).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	wiz, err := formwizard.New(steps,
		formwizard.WithInitialData(map[string]any{"name": ""}),
		formwizard.WithSubmit(func(ctx context.Context, item any) error {
			return apply(ctx, item)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	wiz.Start(ctx)
	_ = wiz.SetValue("name", "web")
	wiz.Next(ctx) // advances to the review step
	if _, err := wiz.Submit(ctx); err != nil {
		log.Println(err)
	}

Interactive terminal sessions are driven by Runner; cmd/formwizard wraps it in a CLI.
*/
package formwizard
