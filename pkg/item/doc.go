/*
Package item implements the edited data object (the "Item") and dotted-path access to it.

An Item is a loosely-typed JSON-like tree: map[string]any, []any and scalars, as produced
by the YAML and JSON decoders. Paths are dotted ("spec.containers.0.name"); numeric
segments index sequences.

Reads never fail: a missing segment yields the caller supplied default. Writes create
intermediate maps as needed and extend sequences for out-of-range indexes.
*/
package item
