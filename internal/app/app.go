// Package app is the terminal front-end: a bubbletea model that displays
// the status buffer, dispatches keys to the operations layer, and renders
// the transient menus declared by the command matrix.
package app

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jax-editor/git-mode/internal/config"
	"github.com/jax-editor/git-mode/internal/gitcmd"
	"github.com/jax-editor/git-mode/internal/section"
	"github.com/jax-editor/git-mode/internal/status"
	"github.com/jax-editor/git-mode/internal/ui"
)

type mode int

const (
	modeStatus mode = iota
	modeTransient
	modePrompt
	modePicker
	modeCommit
	modeConfirm
	modeView
)

// ── Messages ────────────────────────────────────────────────────────────────

// RefreshMsg asks the app to refresh the status buffer.
type RefreshMsg struct{}

// RefreshedMsg tells the app the buffer was refreshed externally (the
// post-save debounce path) and only the display needs to catch up.
type RefreshedMsg struct{}

type refreshDoneMsg struct{}

type opDoneMsg struct {
	op  string
	err error
}

type errMsg struct{ err error }

type infoMsg struct{ text string }

type clearStatusMsg struct{}

// ── Model ───────────────────────────────────────────────────────────────────

// Model is the root bubbletea model.
type Model struct {
	buf    *status.Buffer
	reg    *status.Registry
	plog   *gitcmd.ProcessLog
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap

	width  int
	height int

	mode   mode
	cursor int // index into the visible-line list
	scroll int

	trans *transientState

	input       textinput.Model
	promptLabel string
	onSubmit    func(text string) tea.Cmd

	pickItems  []string
	pickCursor int
	pickLabel  string
	onPick     func(choice string) tea.Cmd

	commitTA   textarea.Model
	commitCat  string
	commitArgs []string

	confirmText string
	onConfirm   func() tea.Cmd

	viewTitle string
	viewLines []string
	viewTop   int
	viewLine  int

	selecting bool
	showHelp  bool

	statusMsg string
	statusErr bool
}

// New creates the application model.
func New(buf *status.Buffer, reg *status.Registry, plog *gitcmd.ProcessLog, cfg *config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "Commit message..."
	ta.CharLimit = 0
	ta.SetHeight(5)

	return Model{
		buf:      buf,
		reg:      reg,
		plog:     plog,
		cfg:      cfg,
		styles:   ui.StylesFor(cfg.Theme),
		keys:     DefaultKeyMap(),
		input:    ti,
		commitTA: ta,
	}
}

// Init triggers the first refresh.
func (m Model) Init() tea.Cmd { return m.refresh() }

func (m Model) refresh() tea.Cmd {
	buf := m.buf
	return func() tea.Msg {
		buf.Refresh()
		return refreshDoneMsg{}
	}
}

// runOp dispatches a long-running operation to the scheduler and waits for
// its completion message.
func (m Model) runOp(args []string) tea.Cmd {
	ch := make(chan error, 1)
	m.buf.RunOperation(args, func(err error) { ch <- err })
	op := args[0]
	return func() tea.Msg { return opDoneMsg{op: op, err: <-ch} }
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// ── Update ──────────────────────────────────────────────────────────────────

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.commitTA.SetWidth(msg.Width - 4)
		m.input.Width = msg.Width - 4
		return m, nil

	case RefreshMsg:
		return m, m.refresh()

	case refreshDoneMsg, RefreshedMsg:
		m.clampCursor()
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus(msg.op+" finished", false)
		}
		// Tree-changing operations may have rewritten the worktree under
		// an open file view; reload it from disk.
		if status.TreeChanging(msg.op) && m.mode == modeView && !strings.HasPrefix(m.viewTitle, "*") {
			if data, err := os.ReadFile(m.viewTitle); err == nil {
				m.viewLines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			}
		}
		m.clampCursor()
		return m, clearStatusAfter(4 * time.Second)

	case errMsg:
		// Mutation failures always refresh, reconciling the UI with what
		// actually happened.
		m.setStatus(msg.err.Error(), true)
		return m, tea.Batch(m.refresh(), clearStatusAfter(4*time.Second))

	case infoMsg:
		m.setStatus(msg.text, false)
		return m, clearStatusAfter(4 * time.Second)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case showViewMsg:
		m.openView(msg.title, msg.content, 0)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeTransient:
			return m.updateTransient(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		case modePicker:
			return m.updatePicker(msg)
		case modeCommit:
			return m.updateCommit(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeView:
			return m.updateView(msg)
		}
		return m.updateStatus(msg)
	}
	return m, nil
}

func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, keys.Log):
		m.openView("*git-process*", m.plog.Buffer().Text(), 0)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, keys.NextSection):
		m.jumpTo(m.treeNav(func(t sectionNav, l int) int { return t.NextSection(l) }))
		return m, nil
	case key.Matches(msg, keys.PrevSection):
		m.jumpTo(m.treeNav(func(t sectionNav, l int) int { return t.PrevSection(l) }))
		return m, nil
	case key.Matches(msg, keys.NextSibling):
		m.jumpTo(m.treeNav(func(t sectionNav, l int) int { return t.NextSibling(l) }))
		return m, nil
	case key.Matches(msg, keys.PrevSibling):
		m.jumpTo(m.treeNav(func(t sectionNav, l int) int { return t.PrevSibling(l) }))
		return m, nil
	case key.Matches(msg, keys.Parent):
		m.jumpTo(m.treeNav(func(t sectionNav, l int) int { return t.ParentLine(l) }))
		return m, nil

	case key.Matches(msg, keys.Toggle):
		m.toggleAtPoint()
		return m, nil
	case key.Matches(msg, keys.Level1), key.Matches(msg, keys.Level2),
		key.Matches(msg, keys.Level3), key.Matches(msg, keys.Level4):
		if t := m.buf.Tree(); t != nil {
			t.SetVisibilityLevel(int(msg.String()[0] - '0'))
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		m.toggleSelection()
		return m, nil

	case key.Matches(msg, keys.Stage):
		return m.mutate(func() error { return m.buf.Stage(m.cursorLine()) })
	case key.Matches(msg, keys.Unstage):
		return m.mutate(func() error { return m.buf.Unstage(m.cursorLine()) })
	case key.Matches(msg, keys.Discard):
		return m.discard()
	case key.Matches(msg, keys.Visit):
		return m.visit()

	case key.Matches(msg, keys.Commit):
		return m.openTransient("commit")
	case key.Matches(msg, keys.Push):
		return m.openTransient("push")
	case key.Matches(msg, keys.Pull):
		return m.openTransient("pull")
	case key.Matches(msg, keys.Fetch):
		return m.openTransient("fetch")
	case key.Matches(msg, keys.Stash):
		return m.openTransient("stash")
	case key.Matches(msg, keys.Merge):
		return m.openTransient("merge")
	case key.Matches(msg, keys.Rebase):
		return m.openTransient("rebase")
	case key.Matches(msg, keys.CherryPick):
		return m.openTransient("cherry-pick")
	case key.Matches(msg, keys.Reset):
		return m.openTransient("reset")
	case key.Matches(msg, keys.Tag):
		return m.openTransient("tag")
	case key.Matches(msg, keys.Branch):
		return m.openTransient("branch")
	case key.Matches(msg, keys.LogMenu):
		return m.openTransient("log")
	case key.Matches(msg, keys.DiffMenu):
		return m.openTransient("diff")
	}
	return m, nil
}

// ── Cursor / navigation over visible lines ──────────────────────────────────

type sectionNav interface {
	NextSection(line int) int
	PrevSection(line int) int
	NextSibling(line int) int
	PrevSibling(line int) int
	ParentLine(line int) int
}

// visibleLines returns buffer line numbers in display order, skipping lines
// hidden inside collapsed sections.
func (m *Model) visibleLines() []int {
	total := m.buf.Buf.LineCount()
	hidden := make([]bool, total)
	if t := m.buf.Tree(); t != nil {
		var walk func(n *section.Section)
		walk = func(n *section.Section) {
			if n.Collapsed {
				for l := n.Start + 1; l <= n.End && l < total; l++ {
					hidden[l] = true
				}
				return
			}
			for _, c := range n.Children {
				walk(c)
			}
		}
		for _, r := range t.Roots {
			walk(r)
		}
	}
	lines := make([]int, 0, total)
	for l := 0; l < total; l++ {
		if !hidden[l] {
			lines = append(lines, l)
		}
	}
	return lines
}

func (m *Model) cursorLine() int {
	vis := m.visibleLines()
	if len(vis) == 0 {
		return 0
	}
	if m.cursor >= len(vis) {
		return vis[len(vis)-1]
	}
	return vis[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	vis := m.visibleLines()
	if len(vis) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(vis) {
		m.cursor = len(vis) - 1
	}
	m.buf.SaveCursor(m.buf.Buf.LineStart(vis[m.cursor]))
	if m.selecting {
		m.buf.ExtendSelection(vis[m.cursor])
	}
}

func (m *Model) clampCursor() {
	vis := m.visibleLines()
	if len(vis) == 0 {
		m.cursor = 0
		return
	}
	// Prefer the saved byte offset from before the render.
	line := m.buf.Buf.LineAt(m.buf.Cursor())
	for i, l := range vis {
		if l >= line {
			m.cursor = i
			return
		}
	}
	m.cursor = len(vis) - 1
}

func (m *Model) jumpTo(line int) {
	if line < 0 {
		return
	}
	for i, l := range m.visibleLines() {
		if l == line {
			m.cursor = i
			m.buf.SaveCursor(m.buf.Buf.LineStart(l))
			return
		}
	}
}

func (m *Model) treeNav(f func(t sectionNav, line int) int) int {
	t := m.buf.Tree()
	if t == nil {
		return -1
	}
	return f(t, m.cursorLine())
}

// ── Point operations ────────────────────────────────────────────────────────

func (m *Model) toggleAtPoint() {
	t := m.buf.Tree()
	if t == nil {
		return
	}
	node := t.At(m.cursorLine())
	if node == nil {
		return
	}
	switch d := node.Data.(type) {
	case section.GroupData:
		m.buf.ToggleSection(d.Key)
	case section.FileData:
		m.buf.ToggleFile(d.ExpandKey())
	case section.CommitData:
		m.buf.ToggleCommit(d.Commit.Hash)
	default:
		t.Toggle(node.Start)
	}
	m.clampCursor()
}

func (m *Model) toggleSelection() {
	if m.selecting {
		m.selecting = false
		m.buf.ClearSelection()
		return
	}
	m.selecting = true
	m.buf.StartSelection(m.cursorLine())
}

// mutate runs a staging operation off the UI goroutine and refreshes after.
func (m Model) mutate(op func() error) (tea.Model, tea.Cmd) {
	m.selecting = false
	return m, func() tea.Msg {
		if err := op(); err != nil {
			return errMsg{err}
		}
		return RefreshMsg{}
	}
}

func (m Model) discard() (tea.Model, tea.Cmd) {
	line := m.cursorLine()
	buf := m.buf
	run := func() tea.Cmd {
		return func() tea.Msg {
			if err := buf.Discard(line); err != nil {
				return errMsg{err}
			}
			return RefreshMsg{}
		}
	}
	if !m.cfg.ConfirmDestructive {
		m.selecting = false
		return m, run()
	}
	m.mode = modeConfirm
	m.confirmText = "Discard change at point? (y/n)"
	m.onConfirm = run
	return m, nil
}

func (m Model) visit() (tea.Model, tea.Cmd) {
	v, err := m.buf.VisitAtPoint(m.cursorLine())
	if err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}
	if v.Content != "" {
		m.openView(v.Title, v.Content, v.Line)
		return m, nil
	}
	data, err := os.ReadFile(v.Path)
	if err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}
	m.openView(v.Path, string(data), v.Line)
	return m, nil
}

func (m *Model) openView(title, content string, line int) {
	m.viewTitle = title
	m.viewLines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	m.viewLine = line
	m.viewTop = line - m.contentHeight()/2
	if m.viewTop < 0 {
		m.viewTop = 0
	}
	m.mode = modeView
}

func (m Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = modeStatus
	case "j", "down":
		if m.viewTop < len(m.viewLines)-1 {
			m.viewTop++
		}
	case "k", "up":
		if m.viewTop > 0 {
			m.viewTop--
		}
	case "ctrl+d", "pgdown":
		m.viewTop += m.contentHeight() / 2
		if max := len(m.viewLines) - 1; m.viewTop > max {
			m.viewTop = max
		}
	case "ctrl+u", "pgup":
		m.viewTop -= m.contentHeight() / 2
		if m.viewTop < 0 {
			m.viewTop = 0
		}
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeStatus
	if msg.String() == "y" {
		if f := m.onConfirm; f != nil {
			m.onConfirm = nil
			return m, f()
		}
	}
	m.onConfirm = nil
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
}

func (m *Model) contentHeight() int {
	h := m.height - 2 // status bar + message line
	if h < 1 {
		h = 1
	}
	return h
}
