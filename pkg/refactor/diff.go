package refactor

import (
	"fmt"
	"strings"
)

const maxReportLines = 40

// changeReport renders a compact before/after description of a pending
// change for dry-run responses: the contiguous block of differing lines,
// with unchanged leading and trailing lines trimmed away.
func changeReport(target string, before, after []byte) string {
	oldLines := splitLines(before)
	newLines := splitLines(after)

	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	removed := oldLines[prefix : len(oldLines)-suffix]
	added := newLines[prefix : len(newLines)-suffix]

	var b strings.Builder
	fmt.Fprintf(&b, "would modify %s (lines %d-%d):\n", target, prefix+1, prefix+max(len(removed), 1))
	writeMarked(&b, "-", removed)
	writeMarked(&b, "+", added)
	return strings.TrimRight(b.String(), "\n")
}

func writeMarked(b *strings.Builder, mark string, lines []string) {
	for i, line := range lines {
		if i == maxReportLines {
			fmt.Fprintf(b, "%s ... (%d more lines)\n", mark, len(lines)-i)
			return
		}
		fmt.Fprintf(b, "%s %s\n", mark, line)
	}
}

func splitLines(b []byte) []string {
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
