// Package encoding provides shared text encoding and escaping utilities.
package encoding

import (
	"strings"
)

// metaReplacer escapes the characters the report templates treat as
// markup: # & %.
var metaReplacer = strings.NewReplacer(
	"#", `\#`,
	"&", `\&`,
	"%", `\%`,
)

// EscapeLaTeXMeta prefixes #, & and % with a backslash.
// It is applied exactly once to each leaf of user text; applying it twice
// double-escapes. Code block content must not be passed through it.
func EscapeLaTeXMeta(s string) string {
	return metaReplacer.Replace(s)
}

// EscapeLaTeX escapes special characters for LaTeX documents.
// Escapes: \ { } $ % & # _ ^ ~
// Used for raw labels (such as evidence locations) that never went through
// the textile interpreter.
func EscapeLaTeX(s string) string {
	// Use placeholder for backslash to avoid re-escaping braces in \textbackslash{}
	const placeholder = "\x00BACKSLASH\x00"
	s = strings.ReplaceAll(s, "\\", placeholder)

	// Escape all other special characters
	replacements := []struct {
		old, new string
	}{
		{"{", "\\{"},
		{"}", "\\}"},
		{"$", "\\$"},
		{"%", "\\%"},
		{"&", "\\&"},
		{"#", "\\#"},
		{"_", "\\_"},
		{"^", "\\^{}"},
		{"~", "\\~{}"},
	}

	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}

	// Replace placeholder with final backslash escape
	s = strings.ReplaceAll(s, placeholder, "\\textbackslash{}")
	return s
}
