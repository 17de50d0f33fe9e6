package status

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jax-editor/git-mode/internal/gitcmd"
	"github.com/jax-editor/git-mode/internal/patch"
	"github.com/jax-editor/git-mode/internal/section"
)

// ErrNothingAtPoint is returned when the cursor line carries no actionable
// section.
var ErrNothingAtPoint = errors.New("nothing at point")

// Stage stages the thing at the cursor line: an untracked or unstaged file,
// an unstaged hunk (whole or region), or every child of the Untracked or
// Unstaged section header.
func (b *Buffer) Stage(line int) error {
	node, key := b.resolve(line)
	if node == nil {
		return ErrNothingAtPoint
	}
	switch node.Kind {
	case section.KindFile:
		if key != section.KeyUntracked && key != section.KeyUnstaged {
			return fmt.Errorf("already staged")
		}
		fd := node.Data.(section.FileData)
		return b.git("add", "--", fd.Path)
	case section.KindHunk:
		if key != section.KeyUnstaged {
			return fmt.Errorf("hunk is not unstaged")
		}
		text, err := b.hunkPatch(node, false)
		if err != nil {
			return err
		}
		return b.apply(text, "apply", "--cached")
	case section.KindSectionHeader:
		if key != section.KeyUntracked && key != section.KeyUnstaged {
			return fmt.Errorf("cannot stage this section")
		}
		for _, c := range node.Children {
			if fd, ok := c.Data.(section.FileData); ok {
				if err := b.git("add", "--", fd.Path); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return ErrNothingAtPoint
}

// Unstage unstages the thing at the cursor line: a staged file, a staged
// hunk (whole or region), or every child of the Staged section header.
func (b *Buffer) Unstage(line int) error {
	node, key := b.resolve(line)
	if node == nil {
		return ErrNothingAtPoint
	}
	switch node.Kind {
	case section.KindFile:
		if key != section.KeyStaged {
			return fmt.Errorf("not staged")
		}
		fd := node.Data.(section.FileData)
		return b.git("restore", "--staged", "--", fd.Path)
	case section.KindHunk:
		if key != section.KeyStaged {
			return fmt.Errorf("hunk is not staged")
		}
		if s, e, ok := b.regionFor(node); ok {
			// Region unstage applies the reverse-transform patch forward.
			text, err := b.regionPatch(node, s, e, true)
			if err != nil {
				return err
			}
			return b.apply(text, "apply", "--cached")
		}
		text, err := b.hunkPatch(node, true)
		if err != nil {
			return err
		}
		return b.apply(text, "apply", "--cached", "--reverse")
	case section.KindSectionHeader:
		if key != section.KeyStaged {
			return fmt.Errorf("cannot unstage this section")
		}
		for _, c := range node.Children {
			if fd, ok := c.Data.(section.FileData); ok {
				if err := b.git("restore", "--staged", "--", fd.Path); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return ErrNothingAtPoint
}

// Discard throws away the change at the cursor line: delete an untracked
// file, check out an unstaged file, or reverse-apply a hunk against the
// worktree. Confirmation is the caller's responsibility.
func (b *Buffer) Discard(line int) error {
	node, key := b.resolve(line)
	if node == nil {
		return ErrNothingAtPoint
	}
	switch node.Kind {
	case section.KindFile:
		return b.discardFile(node.Data.(section.FileData), key)
	case section.KindHunk:
		if s, e, ok := b.regionFor(node); ok {
			text, err := b.regionPatch(node, s, e, true)
			if err != nil {
				return err
			}
			return b.apply(text, "apply")
		}
		text, err := b.hunkPatch(node, true)
		if err != nil {
			return err
		}
		return b.apply(text, "apply", "--reverse")
	case section.KindSectionHeader:
		for _, c := range node.Children {
			if fd, ok := c.Data.(section.FileData); ok {
				if err := b.discardFile(fd, key); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return ErrNothingAtPoint
}

func (b *Buffer) discardFile(fd section.FileData, key section.StatusKey) error {
	if key == section.KeyUntracked {
		return os.Remove(filepath.Join(b.Root, fd.Path))
	}
	return b.git("checkout", "--", fd.Path)
}

// ── Visit ───────────────────────────────────────────────────────────────────

// Visit describes what the front-end should open for the thing at point.
type Visit struct {
	Path    string // absolute file to open; empty when Content is a view
	Line    int    // 0-based target line
	Content string // read-only content (old file side, or commit diff)
	Title   string // view title when Content is set
}

// VisitAtPoint resolves the visit target for the cursor line: the working
// copy for files and new-side hunk lines, the old file content for removed
// lines, or a commit's diff.
func (b *Buffer) VisitAtPoint(line int) (*Visit, error) {
	node, key := b.resolve(line)
	if node == nil {
		return nil, ErrNothingAtPoint
	}
	switch node.Kind {
	case section.KindFile:
		fd := node.Data.(section.FileData)
		return &Visit{Path: filepath.Join(b.Root, fd.Path)}, nil
	case section.KindHunk:
		return b.visitHunk(node, key, line)
	case section.KindCommit:
		c := node.Data.(section.CommitData).Commit
		res := b.Run.Run("show", "--format=medium", c.Hash)
		if !res.Ok() {
			return nil, resultErr(res)
		}
		return &Visit{Content: res.Stdout, Title: c.Hash}, nil
	case section.KindStash:
		sd := node.Data.(section.StashData)
		res := b.Run.Run("stash", "show", "-p", sd.Ref)
		if !res.Ok() {
			return nil, resultErr(res)
		}
		return &Visit{Content: res.Stdout, Title: sd.Ref}, nil
	}
	return nil, ErrNothingAtPoint
}

func (b *Buffer) visitHunk(node *section.Section, key section.StatusKey, line int) (*Visit, error) {
	hd := node.Data.(section.HunkData)
	h := hd.Hunk
	offset := line - (node.Start + 1)
	if offset < 0 {
		// Hunk header: the working copy at the hunk's first new-side line.
		return &Visit{
			Path: filepath.Join(b.Root, hd.Diff.Path()),
			Line: h.NewStart - 1,
		}, nil
	}
	if offset >= len(h.Lines) {
		return nil, ErrNothingAtPoint
	}

	oldLine, newLine := h.OldStart, h.NewStart
	for i := 0; i < offset; i++ {
		switch prefixOf(h.Lines[i]) {
		case ' ':
			oldLine++
			newLine++
		case '+':
			newLine++
		case '-':
			oldLine++
		}
	}

	if prefixOf(h.Lines[offset]) == '-' {
		// Removed line: show the old content from HEAD (staged hunks) or
		// the index (unstaged).
		ref := ""
		if key == section.KeyStaged {
			ref = "HEAD"
		}
		oldPath := hd.Diff.OldFile
		if oldPath == "" {
			oldPath = hd.Diff.File
		}
		res := b.Run.Run("show", ref+":"+oldPath)
		if !res.Ok() {
			return nil, resultErr(res)
		}
		return &Visit{Content: res.Stdout, Title: oldPath, Line: oldLine - 1}, nil
	}
	return &Visit{Path: filepath.Join(b.Root, hd.Diff.Path()), Line: newLine - 1}, nil
}

func prefixOf(line string) byte {
	if line == "" {
		return ' '
	}
	return line[0]
}

// ── Shared plumbing ─────────────────────────────────────────────────────────

// resolve returns the section at the line and the status key of its
// enclosing group.
func (b *Buffer) resolve(line int) (*section.Section, section.StatusKey) {
	b.mu.Lock()
	tree := b.tree
	b.mu.Unlock()
	if tree == nil {
		return nil, ""
	}
	node := tree.At(line)
	if node == nil {
		return nil, ""
	}
	for n := node; n != nil; n = n.Parent {
		switch d := n.Data.(type) {
		case section.FileData:
			return node, d.Key
		case section.GroupData:
			return node, d.Key
		}
	}
	return node, ""
}

// hunkPatch builds the patch for a hunk operation: the active region when
// one maps into the hunk, otherwise the whole hunk. reverseRegion selects
// the reverse-transform variant for region patches.
func (b *Buffer) hunkPatch(node *section.Section, reverseRegion bool) (string, error) {
	if s, e, ok := b.regionFor(node); ok {
		return b.regionPatch(node, s, e, reverseRegion)
	}
	hd := node.Data.(section.HunkData)
	return patch.Hunk(hd.Diff, hd.Hunk), nil
}

func (b *Buffer) regionPatch(node *section.Section, s, e int, reverse bool) (string, error) {
	hd := node.Data.(section.HunkData)
	text := patch.Region(hd.Diff, hd.Hunk, s, e)
	if reverse {
		text = patch.Reverse(text)
	}
	return text, nil
}

// regionFor maps the active line selection onto hunk content offsets. The
// content lines begin one past the hunk header. A region is valid only when
// the clamped range lies wholly within the hunk.
func (b *Buffer) regionFor(node *section.Section) (s, e int, ok bool) {
	lo, hi, have := b.SelectionRange()
	if !have {
		return 0, 0, false
	}
	hd := node.Data.(section.HunkData)
	s = lo - (node.Start + 1)
	e = hi - (node.Start + 1)
	if s < 0 {
		s = 0
	}
	if max := len(hd.Hunk.Lines) - 1; e > max {
		e = max
	}
	if s > e {
		return 0, 0, false
	}
	return s, e, true
}

func (b *Buffer) git(args ...string) error {
	res := b.Run.RunWrite(args...)
	if !res.Ok() {
		return resultErr(res)
	}
	b.ClearSelection()
	return nil
}

func (b *Buffer) apply(patchText string, args ...string) error {
	if !strings.HasSuffix(patchText, "\n") {
		patchText += "\n"
	}
	res := b.Run.RunWithInput(patchText, args...)
	if !res.Ok() {
		return resultErr(res)
	}
	b.ClearSelection()
	return nil
}

func resultErr(res gitcmd.Result) error {
	msg := res.FirstErrLine()
	if msg == "" {
		msg = fmt.Sprintf("git exited %d", res.ExitCode)
	}
	return errors.New(msg)
}
