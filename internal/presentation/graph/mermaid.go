package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/form"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	CurrentStep string
}

// GenerateMermaid produces a Mermaid flowchart of the wizard: every step in order,
// then the review step. It applies semantic styling:
// - Review: ((Circle))
// - Step without inputs: [/Parallelogram/]
// - Default: [Rectangle]
// Hidden steps are reached by dotted edges and styled as hidden; steps showing an
// error icon are styled as invalid.
func GenerateMermaid(steps []form.StepState, reviewLabel string, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var hidden, invalid []string
	prev := ""
	for _, s := range steps {
		safeID := sanitizeMermaidID(s.ID)

		opener, closer := "[", "]"
		if !s.HasInputs {
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(s.Label), closer)

		if prev != "" {
			arrow := "-->"
			if s.Hidden {
				arrow = "-. \"hidden\" .->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", prev, arrow, safeID)
		}
		prev = safeID

		if s.Hidden {
			hidden = append(hidden, safeID)
		}
		if s.ShowErrorIcon {
			invalid = append(invalid, safeID)
		}
	}

	review := sanitizeMermaidID(domain.ReviewStepID)
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", review, escapeLabel(reviewLabel))
	if prev != "" {
		fmt.Fprintf(&sb, "    %s --> %s\n", prev, review)
	}

	sb.WriteString("\n    %% Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef hidden fill:#f5f5f5,stroke:#9e9e9e,stroke-dasharray:5 5,color:#757575;\n")
	sb.WriteString("    classDef invalid fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	for _, id := range hidden {
		fmt.Fprintf(&sb, "    class %s hidden;\n", id)
	}
	for _, id := range invalid {
		fmt.Fprintf(&sb, "    class %s invalid;\n", id)
	}
	if overlay != nil && overlay.CurrentStep != "" {
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentStep))
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
