// Package patch builds standalone patches from parsed diffs: whole hunks,
// arbitrary line ranges within a hunk, and reverse-sense patches used to
// unstage and discard. Patches are fed to `git apply` on stdin.
package patch

import (
	"fmt"
	"strings"

	"github.com/jax-editor/git-mode/internal/git"
)

// fileHeader renders the diff --git / --- / +++ triplet for a file. The a/
// and b/ prefixes always carry a real path: for new or deleted files the
// opposite side's path is substituted, never /dev/null, because parsed
// diffs normalise /dev/null to an absent field.
func fileHeader(fd *git.FileDiff) string {
	oldPath := fd.OldFile
	if oldPath == "" {
		oldPath = fd.File
	}
	newPath := fd.File
	if newPath == "" {
		newPath = fd.OldFile
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", oldPath, newPath)
	fmt.Fprintf(&b, "--- a/%s\n", oldPath)
	fmt.Fprintf(&b, "+++ b/%s\n", newPath)
	return b.String()
}

// Hunk builds a standalone patch containing the whole hunk.
func Hunk(fd *git.FileDiff, h *git.Hunk) string {
	var b strings.Builder
	b.WriteString(fileHeader(fd))
	b.WriteString(h.Header)
	b.WriteByte('\n')
	for _, line := range h.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Region builds a patch for the 0-indexed inclusive offset range [s, e]
// into the hunk's lines. Unselected additions are dropped; unselected
// deletions become context so the line appears on both sides and keeps the
// hunk aligned. The hunk header is re-synthesised from the resulting
// counts.
func Region(fd *git.FileDiff, h *git.Hunk, s, e int) string {
	oldCount, newCount := 0, 0
	kept := make([]string, 0, len(h.Lines))
	for i, line := range h.Lines {
		if line == "" {
			continue
		}
		inRange := i >= s && i <= e
		switch line[0] {
		case ' ':
			kept = append(kept, line)
			oldCount++
			newCount++
		case '+':
			if inRange {
				kept = append(kept, line)
				newCount++
			}
		case '-':
			if inRange {
				kept = append(kept, line)
				oldCount++
			} else {
				kept = append(kept, " "+line[1:])
				oldCount++
				newCount++
			}
		default:
			// "\ No newline at end of file" markers pass through untouched.
			kept = append(kept, line)
		}
	}

	var b strings.Builder
	b.WriteString(fileHeader(fd))
	fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, oldCount, h.NewStart, newCount)
	for _, line := range kept {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Reverse flips the sense of a patch line-wise: leading '+' and '-' swap.
// The "--- " and "+++ " file markers are left as-is.
func Reverse(patch string) string {
	lines := strings.Split(patch, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "+++ ") || strings.HasPrefix(line, "--- ") {
			continue
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '+':
			lines[i] = "-" + line[1:]
		case '-':
			lines[i] = "+" + line[1:]
		}
	}
	return strings.Join(lines, "\n")
}
