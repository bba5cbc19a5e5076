package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/formwizard/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level, refused transitions at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_enter", "step_id", e.StepID, "index", e.Index)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_leave", "step_id", e.StepID)
		},
		OnStepBlocked: func(ctx context.Context, e *domain.StepEvent) {
			logger.WarnContext(ctx, "step_blocked", "step_id", e.StepID)
		},
		OnSubmit: func(ctx context.Context, _ *domain.SubmitEvent) {
			logger.InfoContext(ctx, "submit")
		},
		OnSubmitResult: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, "submit_result",
				"outcome", e.Outcome,
				"message", e.Message,
				"duration", e.Duration,
			)
		},
		OnItemReplaced: func(ctx context.Context, e *domain.ItemEvent) {
			logger.InfoContext(ctx, "item_replaced", "identity", e.Identity)
		},
	}
}

// Combine returns hooks that call every non-nil hook of all, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnStepEnter = chain(out.OnStepEnter, h.OnStepEnter)
		out.OnStepLeave = chain(out.OnStepLeave, h.OnStepLeave)
		out.OnStepBlocked = chain(out.OnStepBlocked, h.OnStepBlocked)
		out.OnSubmit = chain(out.OnSubmit, h.OnSubmit)
		out.OnSubmitResult = chain(out.OnSubmitResult, h.OnSubmitResult)
		out.OnItemReplaced = chain(out.OnItemReplaced, h.OnItemReplaced)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
