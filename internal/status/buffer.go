// Package status assembles the status buffer: it fans out snapshot commands,
// parses the results, renders the section tree into a text buffer, and
// exposes the staging/unstaging/discard/visit operations that act on the
// section under the cursor.
package status

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jax-editor/git-mode/internal/editor"
	"github.com/jax-editor/git-mode/internal/git"
	"github.com/jax-editor/git-mode/internal/gitcmd"
	"github.com/jax-editor/git-mode/internal/section"
)

// DefaultLogMaxCount bounds the commit lists fetched per refresh.
const DefaultLogMaxCount = 32

// DefaultDebounce is the post-save refresh debounce window.
const DefaultDebounce = 300 * time.Millisecond

// Runner is the subprocess surface the status buffer needs: Run for reads,
// RunWrite/RunWithInput/RunNoEditor for mutations. *gitcmd.Runner satisfies
// it; tests substitute canned results.
type Runner interface {
	Run(args ...string) gitcmd.Result
	RunWrite(args ...string) gitcmd.Result
	RunWithInput(input string, args ...string) gitcmd.Result
	RunNoEditor(args ...string) gitcmd.Result
}

// Data is the full parsed snapshot set of one refresh round. It is kept on
// the buffer so view-state toggles can re-render without re-fetching.
type Data struct {
	Snap     *git.Snapshot
	Unstaged []git.FileDiff
	Staged   []git.FileDiff
	Log      []git.Commit
	Unpushed []git.Commit
	Unpulled []git.Commit
	Stashes  []git.StashEntry
	Upstream string
}

// Selection is the stateful line range used for region (sub-hunk)
// operations. Both endpoints are buffer lines; End may precede Anchor.
type Selection struct {
	Anchor int
	End    int
}

// Buffer is the per-repository status buffer: the rendered text, its section
// tree, and the view state that survives refreshes.
type Buffer struct {
	Root  string
	Run   Runner
	Info  git.Info
	Hooks *editor.Hooks

	Buf *editor.MemBuffer
	Ovl *editor.Overlays

	LogMaxCount int
	Debounce    time.Duration

	mu              sync.Mutex
	tree            *section.Tree
	data            *Data
	expandedFiles   map[string]bool
	expandedCommits map[string]bool
	commitDiffs     map[string][]git.FileDiff
	collapsed       map[section.StatusKey]bool
	savedCursor     int
	selection       *Selection

	refreshing atomic.Bool
	saveGen    atomic.Int64
}

// New creates the status buffer for a repository root.
func New(root string, run Runner, hooks *editor.Hooks) *Buffer {
	buf := editor.NewMemBuffer()
	buf.SetReadOnly(true)
	return &Buffer{
		Root:            root,
		Run:             run,
		Info:            git.Info{Run: run},
		Hooks:           hooks,
		Buf:             buf,
		Ovl:             editor.NewOverlays(),
		LogMaxCount:     DefaultLogMaxCount,
		Debounce:        DefaultDebounce,
		expandedFiles:   make(map[string]bool),
		expandedCommits: make(map[string]bool),
		commitDiffs:     make(map[string][]git.FileDiff),
		collapsed:       make(map[section.StatusKey]bool),
	}
}

// Tree returns the current section tree.
func (b *Buffer) Tree() *section.Tree {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tree
}

// Data returns the last parsed snapshot set.
func (b *Buffer) Data() *Data {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// SaveCursor records the byte offset restored after the next render.
func (b *Buffer) SaveCursor(offset int) {
	b.mu.Lock()
	b.savedCursor = offset
	b.mu.Unlock()
}

// Cursor returns the saved byte offset, clamped to the buffer.
func (b *Buffer) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clampedCursor()
}

func (b *Buffer) clampedCursor() int {
	c := b.savedCursor
	if max := b.Buf.Len() - 1; c > max {
		c = max
	}
	if c < 0 {
		c = 0
	}
	return c
}

// ── View state ──────────────────────────────────────────────────────────────

// ToggleFile flips the inline-diff state of a file row and re-renders from
// the persisted data (no fetch).
func (b *Buffer) ToggleFile(key string) {
	b.mu.Lock()
	if b.expandedFiles[key] {
		delete(b.expandedFiles, key)
	} else {
		b.expandedFiles[key] = true
	}
	b.rerenderLocked()
	b.mu.Unlock()
}

// ToggleSection flips the collapsed state of a top-level section header and
// re-renders from the persisted data.
func (b *Buffer) ToggleSection(key section.StatusKey) {
	b.mu.Lock()
	if b.collapsed[key] {
		delete(b.collapsed, key)
	} else {
		b.collapsed[key] = true
	}
	b.rerenderLocked()
	b.mu.Unlock()
}

// ToggleCommit flips the inline-diff state of a commit row. The first
// expansion fetches and parses `git show` for the hash; the parsed diff is
// cached for the life of the buffer.
func (b *Buffer) ToggleCommit(hash string) {
	b.mu.Lock()
	if b.expandedCommits[hash] {
		delete(b.expandedCommits, hash)
		b.rerenderLocked()
		b.mu.Unlock()
		return
	}
	b.expandedCommits[hash] = true
	_, cached := b.commitDiffs[hash]
	b.mu.Unlock()

	if !cached {
		res := b.Run.Run("show", "--format=", hash)
		diffs := []git.FileDiff{}
		if res.Ok() {
			diffs = git.ParseDiff(res.Stdout)
		}
		b.mu.Lock()
		b.commitDiffs[hash] = diffs
		b.mu.Unlock()
	}

	b.mu.Lock()
	b.rerenderLocked()
	b.mu.Unlock()
}

// ── Line selection ──────────────────────────────────────────────────────────

// StartSelection anchors both selection endpoints at the line.
func (b *Buffer) StartSelection(line int) {
	b.mu.Lock()
	b.selection = &Selection{Anchor: line, End: line}
	b.mu.Unlock()
}

// ExtendSelection moves the selection's moving endpoint.
func (b *Buffer) ExtendSelection(line int) {
	b.mu.Lock()
	if b.selection != nil {
		b.selection.End = line
	}
	b.mu.Unlock()
}

// ClearSelection removes the selection.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	b.selection = nil
	b.mu.Unlock()
}

// SelectionRange returns the selection as an ordered line pair.
func (b *Buffer) SelectionRange() (lo, hi int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selection == nil {
		return 0, 0, false
	}
	lo, hi = b.selection.Anchor, b.selection.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// ── Registry ────────────────────────────────────────────────────────────────

// Registry maps repository roots to their status buffers and remembers the
// most recently focused one. Background tasks use it to route refreshes.
// It is the single context object that replaces the original's free-floating
// process-wide state.
type Registry struct {
	mu     sync.Mutex
	bufs   map[string]*Buffer
	recent *Buffer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bufs: make(map[string]*Buffer)}
}

// Lookup returns the buffer for the root, or nil.
func (r *Registry) Lookup(root string) *Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufs[root]
}

// Put registers a buffer and marks it most recent.
func (r *Registry) Put(b *Buffer) {
	r.mu.Lock()
	r.bufs[b.Root] = b
	r.recent = b
	r.mu.Unlock()
}

// Recent returns the most recently focused buffer, or nil.
func (r *Registry) Recent() *Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recent
}
