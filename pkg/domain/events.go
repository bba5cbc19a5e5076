package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter    EventType = "step_enter"
	EventStepLeave    EventType = "step_leave"
	EventStepBlocked  EventType = "step_blocked"
	EventSubmit       EventType = "submit"
	EventSubmitResult EventType = "submit_result"
	EventItemReplaced EventType = "item_replaced"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents entry into, exit from, or a refused exit from a step.
type StepEvent struct {
	EventBase
	StepID string `json:"step_id"`
	Index  int    `json:"index"`
}

// SubmitEvent represents a submit attempt and, for EventSubmitResult, its outcome.
type SubmitEvent struct {
	EventBase
	Outcome  Outcome       `json:"outcome,omitempty"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// ItemEvent represents a wholesale replacement of the edited item.
type ItemEvent struct {
	EventBase
	Identity uint64 `json:"identity"`
}

// LifecycleHooks defines callbacks for orchestrator observability.
type LifecycleHooks struct {
	OnStepEnter    func(context.Context, *StepEvent)
	OnStepLeave    func(context.Context, *StepEvent)
	OnStepBlocked  func(context.Context, *StepEvent)
	OnSubmit       func(context.Context, *SubmitEvent)
	OnSubmitResult func(context.Context, *SubmitEvent)
	OnItemReplaced func(context.Context, *ItemEvent)
}
