package git

import (
	"regexp"
	"strconv"
	"strings"
)

// All parsers here are pure functions of a single stdout string and are
// defensive: unknown lines are skipped, partial records are dropped, and no
// parser ever returns an error. A missing snapshot renders as empty.

// ── Status (porcelain v2) ───────────────────────────────────────────────────

// ParseStatus parses `git status --porcelain=v2 --branch`.
func ParseStatus(out string) *Snapshot {
	snap := &Snapshot{}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "# branch.oid "):
			snap.Branch.OID = strings.TrimPrefix(line, "# branch.oid ")
		case strings.HasPrefix(line, "# branch.head "):
			snap.Branch.Head = strings.TrimPrefix(line, "# branch.head ")
		case strings.HasPrefix(line, "# branch.upstream "):
			snap.Branch.Upstream = strings.TrimPrefix(line, "# branch.upstream ")
		case strings.HasPrefix(line, "# branch.ab "):
			for _, f := range strings.Fields(strings.TrimPrefix(line, "# branch.ab ")) {
				if strings.HasPrefix(f, "+") {
					snap.Branch.Ahead, _ = strconv.Atoi(f[1:])
				} else if strings.HasPrefix(f, "-") {
					snap.Branch.Behind, _ = strconv.Atoi(f[1:])
				}
			}
		case strings.HasPrefix(line, "1 "):
			// 1 XY sub mH mI mW hH hI path
			parts := strings.SplitN(line, " ", 9)
			if len(parts) < 9 {
				continue
			}
			snap.Entries = append(snap.Entries, entry(EntryChanged, parts[1], parts[8], ""))
		case strings.HasPrefix(line, "2 "):
			// 2 XY sub mH mI mW hH hI Xscore path<TAB>origPath
			parts := strings.SplitN(line, " ", 10)
			if len(parts) < 10 {
				continue
			}
			path, orig := parts[9], ""
			if tab := strings.IndexByte(path, '\t'); tab >= 0 {
				orig = path[tab+1:]
				path = path[:tab]
			}
			snap.Entries = append(snap.Entries, entry(EntryRenamed, parts[1], path, orig))
		case strings.HasPrefix(line, "u "):
			// u XY sub m1 m2 m3 mW h1 h2 h3 path
			parts := strings.SplitN(line, " ", 11)
			if len(parts) < 11 {
				continue
			}
			snap.Entries = append(snap.Entries, StatusEntry{
				Kind: EntryUnmerged, XY: parts[1], Path: parts[10],
			})
		case strings.HasPrefix(line, "? "):
			snap.Entries = append(snap.Entries, StatusEntry{
				Kind: EntryUntracked, XY: "??", Path: strings.TrimPrefix(line, "? "),
			})
		}
	}
	return snap
}

func entry(kind EntryKind, xy, path, orig string) StatusEntry {
	e := StatusEntry{Kind: kind, XY: xy, Path: path, OrigPath: orig}
	if len(xy) == 2 {
		e.Staged = xy[0] != '.'
		e.Unstaged = xy[1] != '.'
	}
	return e
}

// ── Unified diff ────────────────────────────────────────────────────────────

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(?: (.*))?$`)

// ParseDiff parses unified diff output into a sequence of file diffs.
// It is a streaming state machine over lines; metadata lines it does not
// care about (index, mode changes, similarity, rename/copy markers) are
// consumed without effect.
func ParseDiff(out string) []FileDiff {
	if out == "" {
		return nil
	}
	var (
		diffs []FileDiff
		file  *FileDiff
		hunk  *Hunk
	)
	flushHunk := func() {
		if hunk != nil && file != nil {
			file.Hunks = append(file.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file != nil {
			diffs = append(diffs, *file)
		}
		file = nil
	}

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flushFile()
			file = &FileDiff{Header: line}
		case file == nil:
			// Preamble noise before the first file header.
		case strings.HasPrefix(line, "--- "):
			file.OldFile = stripDiffPath(line[4:], "a/")
		case strings.HasPrefix(line, "+++ "):
			file.File = stripDiffPath(line[4:], "b/")
		case strings.HasPrefix(line, "Binary files "):
			file.Binary = true
		case strings.HasPrefix(line, "@@"):
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			flushHunk()
			hunk = &Hunk{
				Header:   line,
				OldStart: atoi(m[1]),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoi(m[3]),
				NewCount: atoiDefault(m[4], 1),
				Context:  m[5],
			}
		case hunk != nil && isHunkLine(line):
			hunk.Lines = append(hunk.Lines, line)
		}
	}
	flushFile()
	return diffs
}

func isHunkLine(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case ' ', '+', '-':
		return true
	case '\\':
		return strings.HasPrefix(line, `\ No newline`)
	}
	return false
}

// stripDiffPath removes the a/ or b/ prefix and normalises /dev/null to
// absent.
func stripDiffPath(p, prefix string) string {
	if p == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(p, prefix)
}

// ── Log ─────────────────────────────────────────────────────────────────────

// logFormat is the NUL-delimited record layout used for every log-style
// invocation: short hash, subject, relative date, author, decoration.
const logFormat = "%h%x00%s%x00%ar%x00%an%x00%D"

// LogFormatFlag returns the --format flag for git log.
func LogFormatFlag() string { return "--format=" + logFormat }

// ParseLog parses NUL-delimited log output, one commit per line.
func ParseLog(out string) []Commit {
	if out == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\x00", 5)
		if len(parts) < 5 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Subject: parts[1],
			RelDate: parts[2],
			Author:  parts[3],
			Refs:    parts[4],
		})
	}
	return commits
}

// ── Stash ───────────────────────────────────────────────────────────────────

// ParseStashList parses `git stash list`. Each line is "<ref>: <message>";
// the first ": " separates.
func ParseStashList(out string) []StashEntry {
	if out == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	entries := make([]StashEntry, 0, len(lines))
	for _, line := range lines {
		sep := strings.Index(line, ": ")
		if sep < 0 {
			continue
		}
		entries = append(entries, StashEntry{Ref: line[:sep], Message: line[sep+2:]})
	}
	return entries
}

// ── Branches ────────────────────────────────────────────────────────────────

// BranchFormatFlag returns the --format flag for the NUL-delimited branch
// listing consumed by ParseBranchList.
func BranchFormatFlag() string { return "--format=%(refname:short)%00%(objectname:short)%00%(HEAD)" }

// ParseBranchList parses NUL-delimited `git branch` output: refname, short
// hash, and the HEAD marker.
func ParseBranchList(out string) []BranchInfo {
	if out == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	branches := make([]BranchInfo, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\x00", 3)
		if len(parts) < 3 {
			continue
		}
		b := BranchInfo{
			Name:    parts[0],
			Hash:    parts[1],
			Current: parts[2] == "*",
			Remote:  strings.HasPrefix(parts[0], "remotes/"),
		}
		branches = append(branches, b)
	}
	return branches
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
