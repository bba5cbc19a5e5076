package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the formwizard banner and version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	title := p.String(" formwizard ").Bold().Foreground(p.Color("#f8fafc")).Background(p.Color("#6366f1"))
	ver := p.String("v" + strings.TrimSpace(version)).Foreground(p.Color("#a78bfa"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", title, ver)
	fmt.Fprintln(w, p.String("type 'help' for commands").Faint())
	fmt.Fprintln(w)
}

// Success styles a message reporting a completed action. Without a color terminal
// the message is returned unchanged.
func Success(msg string) string {
	p := termenv.ColorProfile()
	return p.String(msg).Foreground(p.Color("#22c55e")).String()
}

// Failure styles an error message.
func Failure(msg string) string {
	p := termenv.ColorProfile()
	return p.String(msg).Foreground(p.Color("#ef4444")).Bold().String()
}
