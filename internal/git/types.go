package git

// ── Status snapshot ─────────────────────────────────────────────────────────

// BranchHeader holds the `# branch.*` header block of porcelain v2 output.
type BranchHeader struct {
	OID      string
	Head     string // branch name, or "(detached)"
	Upstream string
	Ahead    int
	Behind   int
}

// EntryKind discriminates the per-path record variants of a status snapshot.
type EntryKind int

// Status entry kinds, one per porcelain v2 line type.
const (
	EntryChanged   EntryKind = iota // "1" lines
	EntryRenamed                    // "2" lines
	EntryUnmerged                   // "u" lines
	EntryUntracked                  // "?" lines
)

// StatusEntry is one per-path record of a status snapshot. XY is the
// two-character index/worktree code; Staged and Unstaged are derived from it.
type StatusEntry struct {
	Kind     EntryKind
	XY       string
	Path     string
	OrigPath string // renames only
	Staged   bool
	Unstaged bool
}

// Snapshot is the parsed result of `git status --porcelain=v2 --branch`.
type Snapshot struct {
	Branch  BranchHeader
	Entries []StatusEntry
}

// ChangeType maps an index or worktree status pair to the label shown in
// file rows. The index character wins; worktree M/D are recognised; anything
// else renders as "changed".
func ChangeType(xy string) string {
	if len(xy) < 2 {
		return "changed"
	}
	switch xy[0] {
	case 'M':
		return "modified"
	case 'A':
		return "new file"
	case 'D':
		return "deleted"
	case 'R':
		return "renamed"
	case 'C':
		return "copied"
	}
	switch xy[1] {
	case 'M':
		return "modified"
	case 'D':
		return "deleted"
	}
	return "changed"
}

// ── Diffs ───────────────────────────────────────────────────────────────────

// Hunk is one @@-delimited region of a unified diff. Lines keep their raw
// prefix character (' ', '+', '-', or the "\ No newline" marker).
type Hunk struct {
	Header   string // the raw "@@ … @@" line
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Context  string // trailing context after the closing @@, if any
	Lines    []string
}

// FileDiff is the parsed diff of a single file.
type FileDiff struct {
	Header  string // the raw "diff --git …" line
	File    string // new path; empty for deletions
	OldFile string // old path; empty for additions
	Binary  bool
	Hunks   []Hunk
}

// Path returns the display path: the new path, or the old one for deletions.
func (fd *FileDiff) Path() string {
	if fd.File != "" {
		return fd.File
	}
	return fd.OldFile
}

// ── Log / stash / branches ──────────────────────────────────────────────────

// Commit is one record of the NUL-delimited log format.
type Commit struct {
	Hash    string
	Subject string
	RelDate string
	Author  string
	Refs    string // decoration string; empty when none
}

// StashEntry is one line of `git stash list`.
type StashEntry struct {
	Ref     string // e.g. "stash@{0}"
	Message string
}

// BranchInfo is one line of the NUL-delimited branch listing.
type BranchInfo struct {
	Name    string
	Hash    string
	Current bool
	Remote  bool
}
