/*
Package domain contains the core domain models of the form wizard engine.

It defines the values exchanged between the wizard orchestrator, the form tree and the
host application: the wizard State, step descriptors, per-field validation state,
the editor validity status and the lifecycle events. This package is kept pure and free
of I/O, following the same Hexagonal layout as the rest of the module.

# Key Entities

  - State: the orchestrator snapshot (active step or review, submitting flag, submit error).
  - StepDescriptor: id, label and hidden predicate of one wizard step.
  - ValidationState: the error of one field and whether it should be displayed.
  - EditorStatus: tri-state validity of the raw-text document editor.
  - LifecycleHooks: observability callbacks fired by the orchestrator.
*/
package domain
