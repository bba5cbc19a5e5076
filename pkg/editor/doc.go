// Package editor converts the edited item to and from raw text (YAML or JSON) and keeps
// the syntax-validity status of the text editor. Parse failures are values, never panics.
package editor
