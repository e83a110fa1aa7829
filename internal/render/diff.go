// Package render produces the human-facing view of a patch result: a unified
// diff of the body before and after, optionally colorized for terminals.
package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff generates a unified diff between old and new body text.
func UnifiedDiff(oldText, newText, name string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// Colorize applies terminal colors to a unified diff: additions green,
// removals red, hunk headers cyan. Honors color.NoColor, so output stays
// plain when piped or when the caller disabled color.
func Colorize(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = color.New(color.Bold).Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = color.CyanString(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = color.GreenString(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = color.RedString(line)
		}
	}
	return strings.Join(lines, "\n")
}
