// Package form binds wizard components to the edited item.
//
// A Tree mounts Steps, Sections, Arrays and Fields into an explicit tree of scopes.
// Every field derives (value, hidden, error) from the item and reports into three
// bottom-up aggregates (has inputs, has value, has validation error); each step owns a
// show-validation override point and announces its aggregates to a registry.
//
// All work happens synchronously inside Reconcile, which runs until no pass writes the
// item. A Tree is not safe for concurrent use.
package form
