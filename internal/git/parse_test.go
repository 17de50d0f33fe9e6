package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	out := "# branch.oid a1b2c3d\n" +
		"# branch.head main\n" +
		"# branch.upstream origin/main\n" +
		"# branch.ab +2 -1\n" +
		"1 M. N... 100644 100644 100644 aaa bbb file1.txt\n" +
		"2 R. N... 100644 100644 100644 aaa bbb R100 new.txt\told.txt\n" +
		"? untracked.txt\n"

	snap := ParseStatus(out)

	assert.Equal(t, "a1b2c3d", snap.Branch.OID)
	assert.Equal(t, "main", snap.Branch.Head)
	assert.Equal(t, "origin/main", snap.Branch.Upstream)
	assert.Equal(t, 2, snap.Branch.Ahead)
	assert.Equal(t, 1, snap.Branch.Behind)

	require.Len(t, snap.Entries, 3)

	changed := snap.Entries[0]
	assert.Equal(t, EntryChanged, changed.Kind)
	assert.Equal(t, "M.", changed.XY)
	assert.Equal(t, "file1.txt", changed.Path)
	assert.True(t, changed.Staged)
	assert.False(t, changed.Unstaged)

	renamed := snap.Entries[1]
	assert.Equal(t, EntryRenamed, renamed.Kind)
	assert.Equal(t, "R.", renamed.XY)
	assert.Equal(t, "new.txt", renamed.Path)
	assert.Equal(t, "old.txt", renamed.OrigPath)
	assert.True(t, renamed.Staged)
	assert.False(t, renamed.Unstaged)

	untracked := snap.Entries[2]
	assert.Equal(t, EntryUntracked, untracked.Kind)
	assert.Equal(t, "untracked.txt", untracked.Path)
}

func TestParseStatusUnmerged(t *testing.T) {
	out := "u UU N... 100644 100644 100644 100644 aaa bbb ccc conflicted.go\n"
	snap := ParseStatus(out)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, EntryUnmerged, snap.Entries[0].Kind)
	assert.Equal(t, "UU", snap.Entries[0].XY)
	assert.Equal(t, "conflicted.go", snap.Entries[0].Path)
}

func TestParseStatusMalformed(t *testing.T) {
	// Truncated and unknown lines are skipped, never panic.
	out := "1 M.\n# branch.ab\nnonsense\n2 R. onlyfour\n"
	snap := ParseStatus(out)
	assert.Empty(t, snap.Entries)
}

const sampleDiff = `diff --git a/main.go b/main.go
index 1234567..89abcde 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@ package main
 package main
 
 func main() {
-	fmt.Println("old")
+	fmt.Println("new")
+	fmt.Println("more")
 }
diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index 1234567..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,2 +0,0 @@
-first
-second
`

func TestParseDiff(t *testing.T) {
	diffs := ParseDiff(sampleDiff)
	require.Len(t, diffs, 2)

	fd := diffs[0]
	assert.Equal(t, "diff --git a/main.go b/main.go", fd.Header)
	assert.Equal(t, "main.go", fd.File)
	assert.Equal(t, "main.go", fd.OldFile)
	require.Len(t, fd.Hunks, 1)

	h := fd.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 5, h.OldCount)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 6, h.NewCount)
	assert.Equal(t, "package main", h.Context)
	require.Len(t, h.Lines, 7)
	assert.Equal(t, "-\tfmt.Println(\"old\")", h.Lines[3])
	assert.Equal(t, "+\tfmt.Println(\"new\")", h.Lines[4])

	del := diffs[1]
	assert.Equal(t, "gone.txt", del.OldFile)
	assert.Empty(t, del.File, "/dev/null normalises to absent")
	assert.Equal(t, "gone.txt", del.Path())
	require.Len(t, del.Hunks, 1)
	assert.Equal(t, []string{"-first", "-second"}, del.Hunks[0].Lines)
}

func TestParseDiffDefaultsCounts(t *testing.T) {
	out := "diff --git a/a b/a\n--- a/a\n+++ b/a\n@@ -3 +3 @@\n-x\n+y\n"
	diffs := ParseDiff(out)
	require.Len(t, diffs, 1)
	require.Len(t, diffs[0].Hunks, 1)
	h := diffs[0].Hunks[0]
	assert.Equal(t, 1, h.OldCount)
	assert.Equal(t, 1, h.NewCount)
}

func TestParseDiffBinary(t *testing.T) {
	out := "diff --git a/img.png b/img.png\nindex 123..456 100644\nBinary files a/img.png and b/img.png differ\n"
	diffs := ParseDiff(out)
	require.Len(t, diffs, 1)
	assert.True(t, diffs[0].Binary)
	assert.Empty(t, diffs[0].Hunks)
}

func TestParseDiffNoNewline(t *testing.T) {
	out := "diff --git a/a b/a\n--- a/a\n+++ b/a\n@@ -1 +1 @@\n-x\n+y\n\\ No newline at end of file\n"
	diffs := ParseDiff(out)
	require.Len(t, diffs, 1)
	h := diffs[0].Hunks[0]
	assert.Equal(t, []string{"-x", "+y", `\ No newline at end of file`}, h.Lines)
}

func TestParseLog(t *testing.T) {
	out := "abc1234\x00Fix the thing\x002 days ago\x00Ada\x00HEAD -> main, origin/main\n" +
		"def5678\x00Initial commit\x003 weeks ago\x00Ada\x00\n"
	commits := ParseLog(out)
	require.Len(t, commits, 2)
	assert.Equal(t, Commit{
		Hash: "abc1234", Subject: "Fix the thing", RelDate: "2 days ago",
		Author: "Ada", Refs: "HEAD -> main, origin/main",
	}, commits[0])
	assert.Empty(t, commits[1].Refs)
}

func TestParseLogMalformed(t *testing.T) {
	assert.Nil(t, ParseLog(""))
	assert.Empty(t, ParseLog("not a record\n"))
}

func TestParseStashList(t *testing.T) {
	out := "stash@{0}: WIP on main: abc1234 subject\nstash@{1}: On feature: saved work\n"
	stashes := ParseStashList(out)
	require.Len(t, stashes, 2)
	assert.Equal(t, "stash@{0}", stashes[0].Ref)
	assert.Equal(t, "WIP on main: abc1234 subject", stashes[0].Message)
	assert.Equal(t, "stash@{1}", stashes[1].Ref)
	assert.Equal(t, "On feature: saved work", stashes[1].Message)
}

func TestParseBranchList(t *testing.T) {
	out := "main\x00abc1234\x00*\n" +
		"feature\x00def5678\x00\n" +
		"remotes/origin/main\x00abc1234\x00\n"
	branches := ParseBranchList(out)
	require.Len(t, branches, 3)
	assert.True(t, branches[0].Current)
	assert.False(t, branches[0].Remote)
	assert.Equal(t, "feature", branches[1].Name)
	assert.False(t, branches[1].Current)
	assert.True(t, branches[2].Remote)
}

func TestChangeType(t *testing.T) {
	cases := map[string]string{
		"M.": "modified",
		"A.": "new file",
		"D.": "deleted",
		"R.": "renamed",
		"C.": "copied",
		".M": "modified",
		".D": "deleted",
		"..": "changed",
		"T.": "changed",
	}
	for xy, want := range cases {
		assert.Equal(t, want, ChangeType(xy), "xy=%q", xy)
	}
}
