package testutil

import (
	"strings"

	"github.com/stretchr/testify/assert"
)

// Lines splits file content into lines without the final newline.
func Lines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// AssertTargetLines compares a target dir file against want, line by line.
func (e *Environment) AssertTargetLines(name string, want []string) bool {
	e.t.Helper()
	return assert.Equal(e.t, want, Lines(e.ReadTarget(name)), "lines of %s", name)
}

// LinesWithPrefix keeps the lines that start with prefix, in order.
func LinesWithPrefix(lines []string, prefix string) []string {
	var out []string
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

// AssertPrefixedLines checks the lines of a target dir file that start
// with prefix.
func (e *Environment) AssertPrefixedLines(name, prefix string, want []string) bool {
	e.t.Helper()
	return assert.Equal(e.t, want, LinesWithPrefix(Lines(e.ReadTarget(name)), prefix), "%s lines of %s", prefix, name)
}
