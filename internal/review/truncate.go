package review

import (
	"fmt"
	"strings"
)

const truncationMarker = "... (truncated "

// Truncate bounds content to maxLines lines, appending a marker naming
// how many lines were dropped. Already-truncated content passes through
// unchanged, so truncation is idempotent.
func Truncate(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}

	// The marker adds a blank line plus the marker line.
	if len(lines) == maxLines+2 && strings.HasPrefix(lines[len(lines)-1], truncationMarker) {
		return content
	}

	omitted := len(lines) - maxLines
	return strings.Join(lines[:maxLines], "\n") + fmt.Sprintf("\n\n%s%d lines)", truncationMarker, omitted)
}
