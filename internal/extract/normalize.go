package extract

import (
	"regexp"
	"strings"
)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Normalize cleans extracted text: every line is trimmed of surrounding
// whitespace, runs of three or more newlines collapse to exactly two, and the
// whole result is trimmed. Idempotent; empty input yields empty output.
//
// Lines are trimmed before blank runs are collapsed so that whitespace-only
// lines cannot re-create a longer run after collapsing.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}
