package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwizard/internal/runtime"
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/item"
)

func twoSteps(t *testing.T, initial any) *form.Tree {
	t.Helper()
	tree, err := form.NewTree([]*form.Step{
		{ID: "a", Label: "A", Children: []form.Component{
			&form.Field{Input: form.Input{ID: "name", Required: true}},
		}},
		{ID: "b", Label: "B", Children: []form.Component{
			&form.Field{Input: form.Input{ID: "note"}},
		}},
	}, initial)
	require.NoError(t, err)
	return tree
}

func TestEngine_TwoStepScenario(t *testing.T) {
	ctx := context.Background()
	eng := runtime.NewEngine(twoSteps(t, nil))

	assert.Equal(t, "a", eng.State().StepID)
	f, _ := eng.Tree().Field("name")
	assert.False(t, f.Validation.ShouldDisplay)

	assert.Equal(t, domain.OutcomeBlocked, eng.Next(ctx))
	assert.Equal(t, "a", eng.State().StepID)
	f, _ = eng.Tree().Field("name")
	assert.True(t, f.Validation.ShouldDisplay, "a refused Next makes the error visible")
	assert.Equal(t, []string{"Please fix validation errors"}, eng.Alerts())

	require.NoError(t, eng.SetValue("name", "app"))
	assert.Equal(t, domain.OutcomeAdvanced, eng.Next(ctx))
	assert.Equal(t, "b", eng.State().StepID)
	assert.Equal(t, 1, eng.State().StepIndex)

	assert.Equal(t, domain.OutcomeAdvanced, eng.Next(ctx))
	st := eng.State()
	assert.Equal(t, domain.PhaseReview, st.Phase)
	assert.Equal(t, domain.ReviewStepID, st.StepID)
	assert.True(t, eng.Tree().ShowingAllValidation())
	assert.True(t, eng.CanSubmit())
	assert.Empty(t, eng.Alerts())

	assert.Equal(t, domain.OutcomeIgnored, eng.Next(ctx), "review is terminal")
}

func TestEngine_ReviewShowsEveryError(t *testing.T) {
	ctx := context.Background()
	tree, err := form.NewTree([]*form.Step{
		{ID: "a", Children: []form.Component{&form.Field{Input: form.Input{ID: "x", Required: true}}}},
		{ID: "b", Children: []form.Component{&form.Field{Input: form.Input{ID: "y", Required: true}}}},
	}, map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	eng := runtime.NewEngine(tree)
	toReview(t, eng)

	// Replacing the item drops the step overrides; review still shows every error.
	eng.ReplaceItem(ctx, map[string]any{})
	for _, key := range []string{"x", "y"} {
		f, err := tree.Field(key)
		require.NoError(t, err)
		assert.True(t, f.Validation.ShouldDisplay, key)
	}
	for _, st := range tree.Steps() {
		assert.False(t, st.ShowValidation, st.ID)
		assert.True(t, st.ShowErrorIcon, st.ID)
	}
	assert.False(t, eng.CanSubmit())
	assert.Equal(t, []string{"Please fix validation errors"}, eng.Alerts())
}

func TestEngine_Back(t *testing.T) {
	ctx := context.Background()
	eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}))

	assert.Equal(t, domain.OutcomeIgnored, eng.Back(ctx), "nothing before the first step")

	require.Equal(t, domain.OutcomeAdvanced, eng.Next(ctx))
	require.Equal(t, domain.OutcomeAdvanced, eng.Next(ctx))
	require.Equal(t, domain.PhaseReview, eng.State().Phase)

	require.NoError(t, eng.SetValue("name", ""))
	assert.Equal(t, domain.OutcomeAdvanced, eng.Back(ctx), "back has no validation gate")
	st := eng.State()
	assert.Equal(t, domain.PhaseEditing, st.Phase)
	assert.Equal(t, "b", st.StepID)

	assert.Equal(t, domain.OutcomeAdvanced, eng.Back(ctx))
	assert.Equal(t, "a", eng.State().StepID)
}

func TestEngine_HiddenStepsAreSkipped(t *testing.T) {
	ctx := context.Background()
	skip := func(it any) bool { return item.Get(it, "simple", false) == true }
	tree, err := form.NewTree([]*form.Step{
		{ID: "a", Children: []form.Component{&form.Field{Input: form.Input{ID: "simple"}}}},
		{ID: "b", Hidden: skip, Children: []form.Component{&form.Field{Input: form.Input{ID: "host", Required: true}}}},
		{ID: "c", Children: []form.Component{&form.Field{Input: form.Input{ID: "note"}}}},
	}, map[string]any{"simple": true})
	require.NoError(t, err)
	eng := runtime.NewEngine(tree)

	require.Equal(t, domain.OutcomeAdvanced, eng.Next(ctx))
	assert.Equal(t, "c", eng.State().StepID)
	assert.Equal(t, 2, eng.State().StepIndex)

	require.Equal(t, domain.OutcomeAdvanced, eng.Back(ctx))
	assert.Equal(t, "a", eng.State().StepID)
}

func toReview(t *testing.T, eng *runtime.Engine) {
	t.Helper()
	ctx := context.Background()
	for eng.State().Phase != domain.PhaseReview {
		require.Equal(t, domain.OutcomeAdvanced, eng.Next(ctx))
	}
}

func TestEngine_SubmitGates(t *testing.T) {
	ctx := context.Background()
	var calls int
	submit := func(context.Context, any) error {
		calls++
		return nil
	}
	eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}), runtime.WithSubmit(submit))

	out, err := eng.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeIgnored, out, "submit only acts on review")

	toReview(t, eng)

	eng.SetEditorStatus(domain.EditorPending)
	assert.False(t, eng.CanSubmit())
	assert.Equal(t, []string{"Waiting for editor validation to complete"}, eng.Alerts())
	out, _ = eng.Submit(ctx)
	assert.Equal(t, domain.OutcomeBlocked, out)

	eng.SetEditorStatus(domain.EditorSuccess)
	require.NoError(t, eng.SetValue("name", ""))
	assert.False(t, eng.CanSubmit())
	out, _ = eng.Submit(ctx)
	assert.Equal(t, domain.OutcomeBlocked, out)

	require.NoError(t, eng.SetValue("name", "app"))
	out, err = eng.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSubmitted, out)
	assert.Equal(t, 1, calls)
	assert.False(t, eng.State().Submitting)
}

func TestEngine_SubmitReceivesACopy(t *testing.T) {
	ctx := context.Background()
	var got any
	eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}), runtime.WithSubmit(func(_ context.Context, v any) error {
		got = v
		v.(map[string]any)["name"] = "mutated"
		return nil
	}))
	toReview(t, eng)

	_, err := eng.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mutated", item.Get(got, "name", nil))
	assert.Equal(t, "app", item.Get(eng.Tree().Item(), "name", nil))
}

func TestEngine_SubmitRejected(t *testing.T) {
	tests := []struct {
		name   string
		submit domain.SubmitFunc
		want   string
	}{
		{"error message", func(context.Context, any) error { return errors.New("quota exceeded") }, "quota exceeded"},
		{"empty message", func(context.Context, any) error { return errors.New("") }, "Unknown error"},
		{"panic with error", func(context.Context, any) error { panic(errors.New("boom")) }, "boom"},
		{"panic with value", func(context.Context, any) error { panic(42) }, "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}), runtime.WithSubmit(tt.submit))
			toReview(t, eng)

			out, err := eng.Submit(ctx)
			assert.Equal(t, domain.OutcomeRejected, out)
			var rejected *domain.SubmitRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.want, rejected.Message)

			st := eng.State()
			assert.Equal(t, domain.PhaseReview, st.Phase)
			assert.False(t, st.Submitting)
			assert.Equal(t, tt.want, st.SubmitError)
			assert.Contains(t, eng.Alerts(), tt.want)
			assert.True(t, eng.CanSubmit(), "retry is allowed")
		})
	}
}

func TestEngine_LeavingReviewClearsSubmitError(t *testing.T) {
	ctx := context.Background()
	eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}), runtime.WithSubmit(func(context.Context, any) error {
		return errors.New("nope")
	}))
	toReview(t, eng)
	_, _ = eng.Submit(ctx)
	require.Equal(t, "nope", eng.State().SubmitError)

	eng.Back(ctx)
	assert.Empty(t, eng.State().SubmitError)
}

func TestEngine_SubmitIsNotReentrant(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}), runtime.WithSubmit(func(context.Context, any) error {
		close(started)
		<-release
		return nil
	}))
	toReview(t, eng)

	done := make(chan domain.Outcome)
	go func() {
		out, _ := eng.Submit(ctx)
		done <- out
	}()
	<-started

	assert.True(t, eng.State().Submitting)
	assert.False(t, eng.CanSubmit())
	out, err := eng.Submit(ctx)
	assert.NoError(t, err)
	assert.Equal(t, domain.OutcomeIgnored, out)
	assert.Equal(t, domain.OutcomeIgnored, eng.Next(ctx))
	assert.Equal(t, domain.OutcomeIgnored, eng.Back(ctx))

	close(release)
	select {
	case out := <-done:
		assert.Equal(t, domain.OutcomeSubmitted, out)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not complete")
	}
	assert.False(t, eng.State().Submitting)
}

func TestEngine_Cancel(t *testing.T) {
	cancelled := 0
	eng := runtime.NewEngine(twoSteps(t, nil), runtime.WithCancel(func() { cancelled++ }))
	before := eng.State()

	eng.Cancel()
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, before, eng.State())

	runtime.NewEngine(twoSteps(t, nil)).Cancel()
}

func TestEngine_SetText(t *testing.T) {
	ctx := context.Background()
	var replaced []uint64
	eng := runtime.NewEngine(twoSteps(t, map[string]any{"name": "app"}), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnItemReplaced: func(_ context.Context, e *domain.ItemEvent) { replaced = append(replaced, e.Identity) },
	}))

	text, err := eng.Text()
	require.NoError(t, err)
	assert.Equal(t, "name: app\n", text)

	assert.False(t, eng.SetText(ctx, "name: [unclosed"))
	assert.Equal(t, domain.EditorFailure, eng.EditorStatus())
	assert.NotEmpty(t, eng.EditorMessage())
	assert.Equal(t, "app", item.Get(eng.Tree().Item(), "name", nil), "a failed parse keeps the item")
	assert.False(t, eng.CanSubmit())

	assert.True(t, eng.SetText(ctx, "name: db\nnote: hi\n"))
	assert.Equal(t, domain.EditorSuccess, eng.EditorStatus())
	assert.Equal(t, "db", item.Get(eng.Tree().Item(), "name", nil))
	assert.Equal(t, []uint64{1}, replaced)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	ctx := context.Background()
	var events []string
	record := func(_ context.Context, e *domain.StepEvent) {
		events = append(events, string(e.Type)+":"+e.StepID)
	}
	var results []domain.Outcome
	hooks := domain.LifecycleHooks{
		OnStepEnter:   record,
		OnStepLeave:   record,
		OnStepBlocked: record,
		OnSubmit: func(context.Context, *domain.SubmitEvent) {
			events = append(events, "submit")
		},
		OnSubmitResult: func(_ context.Context, e *domain.SubmitEvent) {
			results = append(results, e.Outcome)
		},
	}
	eng := runtime.NewEngine(twoSteps(t, nil), runtime.WithLifecycleHooks(hooks))

	eng.Start(ctx)
	eng.Next(ctx)
	require.NoError(t, eng.SetValue("name", "app"))
	eng.Next(ctx)
	eng.Next(ctx)
	_, err := eng.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"step_enter:a",
		"step_blocked:a",
		"step_leave:a",
		"step_enter:b",
		"step_leave:b",
		"step_enter:review-step",
		"submit",
	}, events)
	assert.Equal(t, []domain.Outcome{domain.OutcomeSubmitted}, results)
}

func TestEngine_AllStepsHiddenStartsOnReview(t *testing.T) {
	tree, err := form.NewTree([]*form.Step{
		{ID: "a", Hidden: func(any) bool { return true }},
	}, nil)
	require.NoError(t, err)
	eng := runtime.NewEngine(tree)
	assert.Equal(t, domain.PhaseReview, eng.State().Phase)
}
