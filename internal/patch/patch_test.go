package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jax-editor/git-mode/internal/git"
)

func modFile() *git.FileDiff {
	return &git.FileDiff{
		Header:  "diff --git a/main.go b/main.go",
		File:    "main.go",
		OldFile: "main.go",
	}
}

func TestHunkPatch(t *testing.T) {
	h := &git.Hunk{
		Header: "@@ -10,3 +10,4 @@", OldStart: 10, OldCount: 3, NewStart: 10, NewCount: 4,
		Lines: []string{" ctx", "+add1", "+add2", " ctx"},
	}
	got := Hunk(modFile(), h)
	want := "diff --git a/main.go b/main.go\n" +
		"--- a/main.go\n" +
		"+++ b/main.go\n" +
		"@@ -10,3 +10,4 @@\n" +
		" ctx\n+add1\n+add2\n ctx\n"
	assert.Equal(t, want, got)
}

func TestHunkPatchNewFile(t *testing.T) {
	fd := &git.FileDiff{Header: "diff --git a/new.go b/new.go", File: "new.go"}
	h := &git.Hunk{Header: "@@ -0,0 +1,1 @@", NewStart: 1, NewCount: 1, Lines: []string{"+hello"}}
	got := Hunk(fd, h)
	// The a/ side substitutes the new path rather than /dev/null.
	assert.True(t, strings.HasPrefix(got, "diff --git a/new.go b/new.go\n--- a/new.go\n+++ b/new.go\n"))
}

func TestHunkPatchDeletedFile(t *testing.T) {
	fd := &git.FileDiff{Header: "diff --git a/gone.go b/gone.go", OldFile: "gone.go"}
	h := &git.Hunk{Header: "@@ -1,1 +0,0 @@", OldStart: 1, OldCount: 1, Lines: []string{"-bye"}}
	got := Hunk(fd, h)
	assert.True(t, strings.HasPrefix(got, "diff --git a/gone.go b/gone.go\n--- a/gone.go\n+++ b/gone.go\n"))
}

func TestRegionPatchSingleAddition(t *testing.T) {
	h := &git.Hunk{
		Header: "@@ -10,2 +10,4 @@", OldStart: 10, OldCount: 2, NewStart: 10, NewCount: 4,
		Lines: []string{" ctx", "+add1", "+add2", " ctx"},
	}
	got := Region(modFile(), h, 1, 1)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 7)
	// The unselected addition is not part of the patch; the index does not
	// have that line yet, so it cannot appear as context either.
	assert.Equal(t, "@@ -10,2 +10,3 @@", lines[3])
	assert.Equal(t, []string{" ctx", "+add1", " ctx"}, lines[4:])
}

func TestRegionPatchUnselectedDeletionBecomesContext(t *testing.T) {
	h := &git.Hunk{
		Header: "@@ -1,3 +1,2 @@", OldStart: 1, OldCount: 3, NewStart: 1, NewCount: 2,
		Lines: []string{" keep", "-gone1", "-gone2"},
	}
	got := Region(modFile(), h, 1, 1)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// old: ctx + selected deletion + unselected deletion (as context) = 3
	// new: ctx + unselected deletion (as context) = 2
	assert.Equal(t, "@@ -1,3 +1,2 @@", lines[3])
	assert.Equal(t, []string{" keep", "-gone1", " gone2"}, lines[4:])
}

func TestRegionPatchFullRangeEqualsHunkPatch(t *testing.T) {
	h := &git.Hunk{
		Header: "@@ -5,3 +5,3 @@", OldStart: 5, OldCount: 3, NewStart: 5, NewCount: 3,
		Lines: []string{" a", "-b", "+c", " d"},
	}
	region := Region(modFile(), h, 0, len(h.Lines)-1)
	whole := Hunk(modFile(), h)
	assert.Equal(t, whole, region)
}

func TestReverse(t *testing.T) {
	in := "diff --git a/f b/f\n" +
		"--- a/f\n" +
		"+++ b/f\n" +
		"@@ -1,2 +1,3 @@\n" +
		" ctx\n+new\n ctx\n"
	want := "diff --git a/f b/f\n" +
		"--- a/f\n" +
		"+++ b/f\n" +
		"@@ -1,2 +1,3 @@\n" +
		" ctx\n-new\n ctx\n"
	assert.Equal(t, want, Reverse(in))
}

func TestReverseLeavesFileMarkers(t *testing.T) {
	in := "--- a/f\n+++ b/f\n"
	assert.Equal(t, in, Reverse(in))
}

func TestRoundTripThroughParser(t *testing.T) {
	// Whole-hunk patches re-parsed yield the same hunks (modulo context).
	src := "diff --git a/x.go b/x.go\n" +
		"--- a/x.go\n" +
		"+++ b/x.go\n" +
		"@@ -1,3 +1,4 @@ func x\n" +
		" a\n-b\n+c\n+d\n e\n"
	parsed := git.ParseDiff(src)
	require.Len(t, parsed, 1)
	fd := parsed[0]

	var whole strings.Builder
	for i := range fd.Hunks {
		whole.WriteString(Hunk(&fd, &fd.Hunks[i]))
	}
	reparsed := git.ParseDiff(whole.String())
	require.Len(t, reparsed, 1)
	require.Len(t, reparsed[0].Hunks, len(fd.Hunks))
	for i := range fd.Hunks {
		a, b := fd.Hunks[i], reparsed[0].Hunks[i]
		assert.Equal(t, a.OldStart, b.OldStart)
		assert.Equal(t, a.OldCount, b.OldCount)
		assert.Equal(t, a.NewStart, b.NewStart)
		assert.Equal(t, a.NewCount, b.NewCount)
		assert.Equal(t, a.Lines, b.Lines)
	}
}
