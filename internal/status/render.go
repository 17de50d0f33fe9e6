package status

import (
	"fmt"
	"strings"

	"github.com/jax-editor/git-mode/internal/editor"
	"github.com/jax-editor/git-mode/internal/git"
	"github.com/jax-editor/git-mode/internal/section"
)

// Overlay tags owned by the renderer. Both are cleared and reapplied on
// every render.
const (
	TagFace = "git-face"
	TagDiff = "git-diff"
)

// Face keys the renderer attaches to lines. The front-end maps them to
// concrete styles.
const (
	FaceHead        = "head"
	FaceUpstream    = "upstream"
	FaceSectionHead = "section-heading"
	FaceFile        = "file"
	FaceUntracked   = "untracked"
	FaceHunkHeader  = "hunk-header"
	FaceDiffAdded   = "diff-added"
	FaceDiffRemoved = "diff-removed"
	FaceDiffContext = "diff-context"
	FaceCommit      = "commit"
	FaceStash       = "stash"
)

// renderer accumulates lines, their faces, and the section tree of one
// render pass. All content is always emitted; collapsing is a visibility
// attribute on the tree, applied by the display layer, so that spans stay
// stable when sections toggle.
type renderer struct {
	b     *Buffer
	lines []string
	faces []string // face key per line; "" for none
	tags  []string // overlay tag per line
}

func (r *renderer) add(text, face, tag string) int {
	r.lines = append(r.lines, text)
	r.faces = append(r.faces, face)
	r.tags = append(r.tags, tag)
	return len(r.lines) - 1
}

func (r *renderer) blank() { r.add("", "", "") }

// rerenderLocked renders the persisted data into the buffer: text, section
// tree, and face overlays. Callers hold b.mu. A render either completes or
// is abandoned before any overlay is cleared.
func (b *Buffer) rerenderLocked() {
	if b.data == nil {
		return
	}
	r := &renderer{b: b}
	roots := r.build(b.data)

	text := strings.Join(r.lines, "\n")
	b.Buf.SetReadOnly(false)
	b.Buf.SetText(text)
	b.Buf.SetReadOnly(true)

	b.tree = section.Build(roots)

	b.Ovl.ClearTag(TagFace)
	b.Ovl.ClearTag(TagDiff)
	for i, face := range r.faces {
		if face == "" {
			continue
		}
		start, end := b.Buf.LineStart(i), b.Buf.LineEnd(i)
		if end <= start {
			continue
		}
		b.Ovl.Add(editor.Overlay{Tag: r.tags[i], Start: start, End: end, Face: face})
	}

	b.savedCursor = b.clampedCursor()
}

func (r *renderer) build(data *Data) []*section.Section {
	var roots []*section.Section

	roots = append(roots, r.header(data))

	untracked, unstaged, staged := splitEntries(data.Snap.Entries)

	if s := r.fileGroup(section.KeyUntracked, "Untracked files", untracked, data); s != nil {
		roots = append(roots, s)
	}
	if s := r.fileGroup(section.KeyUnstaged, "Unstaged changes", unstaged, data); s != nil {
		roots = append(roots, s)
	}
	if s := r.fileGroup(section.KeyStaged, "Staged changes", staged, data); s != nil {
		roots = append(roots, s)
	}
	if s := r.commitGroup(section.KeyUnpushed, "Unpushed to "+data.Upstream, data.Unpushed); s != nil {
		roots = append(roots, s)
	}
	if s := r.commitGroup(section.KeyUnpulled, "Unpulled from "+data.Upstream, data.Unpulled); s != nil {
		roots = append(roots, s)
	}
	if s := r.commitGroup(section.KeyLog, "Recent commits", data.Log); s != nil {
		roots = append(roots, s)
	}
	if s := r.stashGroup(data.Stashes); s != nil {
		roots = append(roots, s)
	}
	return roots
}

// ── Header ──────────────────────────────────────────────────────────────────

func (r *renderer) header(data *Data) *section.Section {
	br := data.Snap.Branch
	head := br.Head
	if head == "" {
		head = "(detached)"
	}
	oid := br.OID
	if len(oid) > 7 {
		oid = oid[:7]
	}
	start := r.add(fmt.Sprintf("Head: %s (%s)", head, oid), FaceHead, TagFace)
	end := start
	if data.Upstream != "" {
		end = r.add(fmt.Sprintf("Upstream: %s (%s)", data.Upstream, abSummary(br.Ahead, br.Behind)), FaceUpstream, TagFace)
	}
	return &section.Section{
		Kind: section.KindHeader, Start: start, End: end,
		Face: FaceHead, Data: section.HeaderData{},
	}
}

func abSummary(ahead, behind int) string {
	switch {
	case ahead > 0 && behind > 0:
		return fmt.Sprintf("ahead %d, behind %d", ahead, behind)
	case ahead > 0:
		return fmt.Sprintf("ahead %d", ahead)
	case behind > 0:
		return fmt.Sprintf("behind %d", behind)
	default:
		return "up to date"
	}
}

func splitEntries(entries []git.StatusEntry) (untracked, unstaged, staged []git.StatusEntry) {
	for _, e := range entries {
		switch {
		case e.Kind == git.EntryUntracked:
			untracked = append(untracked, e)
		case e.Kind == git.EntryUnmerged:
			unstaged = append(unstaged, e)
		default:
			if e.Unstaged {
				unstaged = append(unstaged, e)
			}
			if e.Staged {
				staged = append(staged, e)
			}
		}
	}
	return untracked, unstaged, staged
}

// ── File groups ─────────────────────────────────────────────────────────────

func (r *renderer) fileGroup(key section.StatusKey, title string, entries []git.StatusEntry, data *Data) *section.Section {
	if len(entries) == 0 {
		return nil
	}
	r.blank()
	start := r.add(fmt.Sprintf("%s (%d)", title, len(entries)), FaceSectionHead, TagFace)
	group := &section.Section{
		Kind: section.KindSectionHeader, Start: start,
		Face: FaceSectionHead, Data: section.GroupData{Key: key},
		Collapsed: r.b.collapsed[key],
	}
	for _, e := range entries {
		group.Children = append(group.Children, r.fileRow(key, e, data))
	}
	group.End = r.lastLine()
	return group
}

func (r *renderer) fileRow(key section.StatusKey, e git.StatusEntry, data *Data) *section.Section {
	face := FaceFile
	var row string
	if e.Kind == git.EntryUntracked {
		face = FaceUntracked
		row = "  " + e.Path
	} else {
		row = fmt.Sprintf("  %s  %s", changeTypeFor(key, e.XY), e.Path)
	}
	start := r.add(row, face, TagFace)

	fd := section.FileData{Path: e.Path, Key: key, Entry: e}
	node := &section.Section{
		Kind: section.KindFile, Start: start,
		Face: face, Data: fd,
	}
	if r.b.expandedFiles[fd.ExpandKey()] {
		if diff := findDiff(diffsFor(key, data), e.Path); diff != nil {
			fd.Diff = diff
			node.Data = fd
			node.Children = r.hunks(diff)
		}
	}
	node.End = r.lastLine()
	return node
}

// changeTypeFor derives the row label: the Staged section considers the
// index character, Unstaged the worktree character.
func changeTypeFor(key section.StatusKey, xy string) string {
	if key == section.KeyUnstaged && len(xy) == 2 {
		return git.ChangeType("." + xy[1:])
	}
	return git.ChangeType(xy)
}

func diffsFor(key section.StatusKey, data *Data) []git.FileDiff {
	if key == section.KeyStaged {
		return data.Staged
	}
	return data.Unstaged
}

func findDiff(diffs []git.FileDiff, path string) *git.FileDiff {
	for i := range diffs {
		if diffs[i].Path() == path {
			return &diffs[i]
		}
	}
	return nil
}

func (r *renderer) hunks(fd *git.FileDiff) []*section.Section {
	nodes := make([]*section.Section, 0, len(fd.Hunks))
	for i := range fd.Hunks {
		h := &fd.Hunks[i]
		start := r.add("    "+h.Header, FaceHunkHeader, TagDiff)
		for _, line := range h.Lines {
			r.add("    "+line, diffFace(line), TagDiff)
		}
		nodes = append(nodes, &section.Section{
			Kind: section.KindHunk, Start: start, End: r.lastLine(),
			Face: FaceHunkHeader, Data: section.HunkData{Hunk: h, Diff: fd},
		})
	}
	return nodes
}

func diffFace(line string) string {
	if line == "" {
		return FaceDiffContext
	}
	switch line[0] {
	case '+':
		return FaceDiffAdded
	case '-':
		return FaceDiffRemoved
	}
	return FaceDiffContext
}

// ── Commit groups ───────────────────────────────────────────────────────────

func (r *renderer) commitGroup(key section.StatusKey, title string, commits []git.Commit) *section.Section {
	if len(commits) == 0 {
		return nil
	}
	r.blank()
	start := r.add(fmt.Sprintf("%s (%d)", title, len(commits)), FaceSectionHead, TagFace)
	group := &section.Section{
		Kind: section.KindSectionHeader, Start: start,
		Face: FaceSectionHead, Data: section.GroupData{Key: key},
		Collapsed: r.b.collapsed[key],
	}
	for _, c := range commits {
		group.Children = append(group.Children, r.commitRow(c))
	}
	group.End = r.lastLine()
	return group
}

func (r *renderer) commitRow(c git.Commit) *section.Section {
	row := fmt.Sprintf("  %s %s  %s", c.Hash, c.RelDate, c.Subject)
	if c.Refs != "" {
		row += " (" + c.Refs + ")"
	}
	start := r.add(row, FaceCommit, TagFace)
	node := &section.Section{
		Kind: section.KindCommit, Start: start,
		Face: FaceCommit, Data: section.CommitData{Commit: c},
	}
	if r.b.expandedCommits[c.Hash] {
		for i := range r.b.commitDiffs[c.Hash] {
			fd := &r.b.commitDiffs[c.Hash][i]
			r.add("    "+fd.Header, FaceHunkHeader, TagDiff)
			node.Children = append(node.Children, r.hunks(fd)...)
		}
	}
	node.End = r.lastLine()
	return node
}

// ── Stashes ─────────────────────────────────────────────────────────────────

func (r *renderer) stashGroup(stashes []git.StashEntry) *section.Section {
	if len(stashes) == 0 {
		return nil
	}
	r.blank()
	start := r.add(fmt.Sprintf("Stashes (%d)", len(stashes)), FaceSectionHead, TagFace)
	group := &section.Section{
		Kind: section.KindSectionHeader, Start: start,
		Face: FaceSectionHead, Data: section.GroupData{Key: section.KeyStash},
		Collapsed: r.b.collapsed[section.KeyStash],
	}
	for _, s := range stashes {
		line := r.add(fmt.Sprintf("  %s: %s", s.Ref, s.Message), FaceStash, TagFace)
		group.Children = append(group.Children, &section.Section{
			Kind: section.KindStash, Start: line, End: line,
			Face: FaceStash, Data: section.StashData{Ref: s.Ref, Message: s.Message},
		})
	}
	group.End = r.lastLine()
	return group
}

func (r *renderer) lastLine() int { return len(r.lines) - 1 }
