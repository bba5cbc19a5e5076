// Package registry holds the StepRegistry: three step-id keyed maps (has inputs,
// show validation, has validation error) owned by the wizard and rebuilt wholesale
// whenever the edited item is replaced.
package registry
