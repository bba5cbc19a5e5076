package formwizard_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwizard"
	"github.com/aretw0/formwizard/pkg/dsl"
	"github.com/aretw0/formwizard/pkg/form"
)

func runScript(t *testing.T, wiz *formwizard.Wizard, script string) string {
	t.Helper()
	var out bytes.Buffer
	r := formwizard.NewRunner()
	r.Input = strings.NewReader(script)
	r.Output = &out
	r.Headless = true
	require.NoError(t, r.Run(context.Background(), wiz))
	return out.String()
}

func TestRunner_SubmitsDocument(t *testing.T) {
	var submitted any
	wiz, err := formwizard.New(twoSteps(t),
		formwizard.WithInitialData(map[string]any{}),
		formwizard.WithSubmit(func(_ context.Context, item any) error {
			submitted = item
			return nil
		}),
	)
	require.NoError(t, err)

	out := runScript(t, wiz, strings.Join([]string{
		"next",
		"set name web",
		"next",
		"set spec.replicas 3",
		"next",
		"submit",
		"",
	}, "\n"))

	assert.Contains(t, out, "Please fix validation errors")
	assert.Contains(t, out, "# Review")
	assert.Contains(t, out, "Submitted.")
	assert.Equal(t, map[string]any{
		"name": "web",
		"spec": map[string]any{"replicas": 3},
	}, submitted)
}

func TestRunner_Errors(t *testing.T) {
	wiz, err := formwizard.New(twoSteps(t), formwizard.WithInitialData(map[string]any{}))
	require.NoError(t, err)

	out := runScript(t, wiz, "bogus\nset\nset missing 1\nsubmit\nback\n")

	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "usage: set <key> <value>")
	assert.Contains(t, out, "field not found")
	assert.Contains(t, out, "submit is only available on the review step")
	assert.Contains(t, out, "no previous step")
}

func TestRunner_SetParsesNullAndKeepsComments(t *testing.T) {
	wiz, err := formwizard.New(twoSteps(t), formwizard.WithInitialData(map[string]any{"name": "web"}))
	require.NoError(t, err)

	runScript(t, wiz, "set name null\n")
	f, err := wiz.Field("name")
	require.NoError(t, err)
	assert.Nil(t, f.Value)

	runScript(t, wiz, "set name #1\n")
	f, _ = wiz.Field("name")
	assert.Equal(t, "#1", f.Value)
}

func TestRunner_ReportsSubmitInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	wiz, err := formwizard.New(twoSteps(t),
		formwizard.WithInitialData(map[string]any{
			"name": "web",
			"spec": map[string]any{"replicas": 1},
		}),
		formwizard.WithSubmit(func(_ context.Context, _ any) error {
			close(started)
			<-release
			return nil
		}),
	)
	require.NoError(t, err)

	done := make(chan string, 1)
	go func() {
		var out bytes.Buffer
		r := formwizard.NewRunner()
		r.Input = strings.NewReader("next\nnext\nsubmit\n")
		r.Output = &out
		r.Headless = true
		_ = r.Run(context.Background(), wiz)
		done <- out.String()
	}()
	<-started

	out := runScript(t, wiz, "next\nback\nsubmit\n")
	close(release)

	assert.Equal(t, 3, strings.Count(out, "a submission is in progress"))
	assert.NotContains(t, out, "already on the review step")
	assert.Contains(t, <-done, "Submitted.")
}

func TestRunner_Cancel(t *testing.T) {
	cancelled := false
	wiz, err := formwizard.New(twoSteps(t),
		formwizard.WithInitialData(map[string]any{}),
		formwizard.WithCancel(func() { cancelled = true }),
	)
	require.NoError(t, err)

	runScript(t, wiz, "cancel\nset name ignored\n")

	assert.True(t, cancelled)
	assert.Equal(t, map[string]any{}, wiz.Item())
}

func TestRunner_Edit(t *testing.T) {
	wiz, err := formwizard.New(twoSteps(t), formwizard.WithInitialData(map[string]any{}))
	require.NoError(t, err)

	out := runScript(t, wiz, "edit\nname: [web\n.\nedit\nname: web\nspec:\n  replicas: 2\n.\ntext\n")

	assert.Contains(t, out, "error: Syntax error on line")
	assert.Equal(t, map[string]any{
		"name": "web",
		"spec": map[string]any{"replicas": 2},
	}, wiz.Item())
	assert.Contains(t, out, "replicas: 2")
}

func TestRunner_Arrays(t *testing.T) {
	steps, err := dsl.New().
		Add("ports").
		Array(dsl.Array("ports", []form.Component{
			dsl.Field("port", dsl.Required()),
		}, dsl.NewValue(func() any { return map[string]any{} }))).
		Build()
	require.NoError(t, err)

	wiz, err := formwizard.New(steps, formwizard.WithInitialData(map[string]any{}))
	require.NoError(t, err)

	runScript(t, wiz, strings.Join([]string{
		"add ports",
		"add ports",
		"set ports.0.port 80",
		"set ports.1.port 443",
		"mv ports 1 0",
		"rm ports 1",
		"",
	}, "\n"))

	assert.Equal(t, map[string]any{
		"ports": []any{map[string]any{"port": 443}},
	}, wiz.Item())
}

func TestMarkdown_ShowsFieldErrorsOnlyOnceVisible(t *testing.T) {
	wiz, err := formwizard.New(twoSteps(t), formwizard.WithInitialData(map[string]any{}))
	require.NoError(t, err)
	ctx := context.Background()
	wiz.Start(ctx)

	md := formwizard.Markdown(wiz)
	assert.Contains(t, md, "# General (1/2)")
	assert.Contains(t, md, "- Name * `name`: _empty_\n")

	wiz.Next(ctx)
	md = formwizard.Markdown(wiz)
	assert.Contains(t, md, "- Name * `name`: _empty_ _(Required)_")
	assert.Contains(t, md, "> **Please fix validation errors**")
}
