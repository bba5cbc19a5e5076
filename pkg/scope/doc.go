/*
Package scope implements the boolean propagation primitives of the form tree.

An Aggregator is a node of a bottom-up OR tree: its value is its local flag OR the value
of every currently attached child of the same kind. Children report to their parent only
when their aggregate flips, and a parent receiving a false report re-checks all of its
remaining children before concluding false.

A Broadcaster is the top-down counterpart: its effective value is its local override OR
the effective value of its nearest ancestor. Overrides never leak into sibling subtrees.

Neither type is safe for concurrent use; the owner of the tree serialises access.
*/
package scope
