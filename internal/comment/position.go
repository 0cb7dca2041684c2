package comment

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// diffLines parses the per-file patch GitHub returns and collects the
// new-file line numbers present in the diff. Inline comments can only
// anchor to those lines. An empty or unparseable patch returns nil,
// which callers treat as "no position data, allow any line".
func diffLines(path, patch string) map[int]bool {
	if strings.TrimSpace(patch) == "" {
		return nil
	}

	// The files API returns hunks without the git header; synthesize one
	// so the parser accepts it.
	raw := fmt.Sprintf("diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n%s\n", path, path, path, path, patch)

	files, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil || len(files) == 0 {
		return nil
	}

	lines := make(map[int]bool)
	for _, frag := range files[0].TextFragments {
		lineNo := int(frag.NewPosition)
		for _, line := range frag.Lines {
			switch line.Op {
			case gitdiff.OpAdd, gitdiff.OpContext:
				lines[lineNo] = true
				lineNo++
			}
		}
	}
	return lines
}

// lineInDiff reports whether a line may receive an inline comment,
// given the diff line set (nil set allows everything).
func lineInDiff(lines map[int]bool, line int) bool {
	if lines == nil {
		return true
	}
	return lines[line]
}
