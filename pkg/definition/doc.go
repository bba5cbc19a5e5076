// Package definition loads declarative wizard definitions from YAML or JSON and
// compiles them into form steps.
//
// A definition lists steps; each step lists inputs of type field (the default),
// display, section or array. Inputs may be required, carry named validators
// ("k8s-name", "rfc1123-label", "rfc1035-label" or "tag:<validator tag>") and be
// hidden by a hidden_when condition on the bound item.
package definition
