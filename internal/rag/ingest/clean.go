package ingest

import (
	"regexp"
	"strings"
)

var (
	carriageReturn = regexp.MustCompile(`\r`)
	trailingSpace  = regexp.MustCompile(`\s+\n`)
	blankLines     = regexp.MustCompile(`\n{2,}`)
	spaceRuns      = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanText normalises line endings and whitespace. CleanText(CleanText(t)) == CleanText(t).
func CleanText(t string) string {
	t = carriageReturn.ReplaceAllString(t, "\n")
	t = trailingSpace.ReplaceAllString(t, "\n")
	t = blankLines.ReplaceAllString(t, "\n\n")
	t = spaceRuns.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
