// Package testhelper holds small utilities shared by tests.
package testhelper

import (
	"strings"
	"testing"
)

// TrimIndent removes the indentation shared by every non-blank line of a raw
// string literal. The first line is dropped when it is empty, as is a final
// line holding only indentation, so a literal can start and end on its own
// lines:
//
//	src := testhelper.TrimIndent(t, `
//		1 + 2
//		// comment
//	`)
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if n := len(lines); n > 1 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}

	indent := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first || len(lead) < len(indent) {
			indent = lead
			first = false
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}
	return strings.Join(lines, "\n")
}
