package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jax-editor/git-mode/internal/editor"
	"github.com/jax-editor/git-mode/internal/git"
	"github.com/jax-editor/git-mode/internal/gitcmd"
	"github.com/jax-editor/git-mode/internal/menu"
)

// errFromResult turns a failed invocation into a one-line user error.
func errFromResult(res gitcmd.Result) error {
	if msg := res.FirstErrLine(); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("git exited %d", res.ExitCode)
}

// transientState is one open transient: its category and the current
// switch toggles.
type transientState struct {
	cat     *menu.Category
	enabled map[string]bool
	dash    bool // a "-" was pressed; the next key names a switch
}

func (m Model) openTransient(name string) (tea.Model, tea.Cmd) {
	cat := menu.Lookup(name)
	if cat == nil {
		return m, nil
	}
	m.trans = &transientState{cat: cat, enabled: make(map[string]bool)}
	m.mode = modeTransient
	return m, nil
}

func (m Model) updateTransient(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.trans
	s := msg.String()

	switch s {
	case "esc", "q", "ctrl+g":
		m.trans = nil
		m.mode = modeStatus
		return m, nil
	case "-":
		t.dash = true
		return m, nil
	}

	if t.dash {
		t.dash = false
		key := "-" + s
		for _, sw := range t.cat.Switches {
			if sw.Key == key {
				t.enabled[key] = !t.enabled[key]
				return m, nil
			}
		}
		return m, nil
	}

	if a := t.cat.Find(s); a != nil {
		return m.execAction(t.cat, a, t.enabled)
	}
	return m, nil
}

// ── Action execution ────────────────────────────────────────────────────────

// longRunning categories go through the background scheduler; everything
// else runs synchronously in a tea.Cmd.
var longRunning = map[string]bool{
	"push": true, "pull": true, "fetch": true,
	"merge": true, "rebase": true, "cherry-pick": true,
}

func (m Model) execAction(cat *menu.Category, a *menu.Action, enabled map[string]bool) (tea.Model, tea.Cmd) {
	m.trans = nil
	m.mode = modeStatus

	switch a.Source {
	case menu.SourceCommitBuf:
		m.commitCat = cat.Name
		m.commitArgs = cat.Args(a, enabled)
		m.commitTA.Reset()
		m.commitTA.Focus()
		m.mode = modeCommit
		return m, nil

	case menu.SourceUpstream, menu.SourcePushRemote:
		ref := m.buf.Info.UpstreamRef("")
		if a.Source == menu.SourcePushRemote {
			ref = m.buf.Info.PushRemoteRef("")
		}
		if ref == "" {
			return m, func() tea.Msg { return infoMsg{"no upstream configured"} }
		}
		return m, m.dispatch(cat, a, enabled, refPositionals(cat.Name, ref)...)

	case menu.SourcePrompt:
		return m.openPrompt(cat.Name+" "+a.Name, func(text string) tea.Cmd {
			if text == "" {
				return nil
			}
			return m.dispatch(cat, a, enabled, strings.Fields(text)...)
		})

	case menu.SourcePicker:
		items, err := m.candidatesFor(cat.Name)
		if err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		if len(items) == 0 {
			return m, func() tea.Msg { return infoMsg{"nothing to pick"} }
		}
		return m.openPicker(cat.Name+" "+a.Name, items, func(choice string) tea.Cmd {
			return m.dispatch(cat, a, enabled, choice)
		})
	}

	return m, m.dispatch(cat, a, enabled)
}

// refPositionals expands an upstream/push-remote ref into the positional
// arguments the subcommand expects: push/pull/fetch take remote and branch
// separately, merge/rebase take the full ref.
func refPositionals(category, ref string) []string {
	switch category {
	case "push", "pull", "fetch":
		parts := strings.SplitN(ref, "/", 2)
		if len(parts) == 2 {
			return []string{parts[0], parts[1]}
		}
		return []string{ref}
	default:
		return []string{ref}
	}
}

func (m Model) dispatch(cat *menu.Category, a *menu.Action, enabled map[string]bool, positional ...string) tea.Cmd {
	args := cat.Args(a, enabled, positional...)
	if longRunning[cat.Name] || (cat.Name == "stash" && len(a.Sub) > 1 && a.Sub[1] == "pop") {
		return m.runOp(args)
	}
	buf := m.buf
	action := *a
	return func() tea.Msg {
		var res gitcmd.Result
		switch {
		case action.NoEditor:
			res = buf.Run.RunNoEditor(args...)
		case action.ReadOnly:
			res = buf.Run.Run(args...)
		default:
			res = buf.Run.RunWrite(args...)
		}
		if !res.Ok() {
			return errMsg{errFromResult(res)}
		}
		if out := strings.TrimSpace(res.Stdout); out != "" && isDisplayOutput(cat.Name) {
			return showViewMsg{title: "*git-" + cat.Name + "*", content: res.Stdout}
		}
		return RefreshMsg{}
	}
}

// isDisplayOutput marks categories whose stdout is content to show rather
// than a side effect to absorb.
func isDisplayOutput(category string) bool {
	switch category {
	case "log", "diff", "tag", "stash":
		return true
	}
	return false
}

type showViewMsg struct {
	title   string
	content string
}

func (m Model) candidatesFor(category string) ([]string, error) {
	switch category {
	case "push", "fetch":
		res := m.buf.Run.Run("remote")
		if !res.Ok() {
			return nil, errFromResult(res)
		}
		return splitLines(res.Stdout), nil
	case "stash":
		res := m.buf.Run.Run("stash", "list")
		if !res.Ok() {
			return nil, errFromResult(res)
		}
		var refs []string
		for _, s := range git.ParseStashList(res.Stdout) {
			refs = append(refs, s.Ref)
		}
		return refs, nil
	case "tag":
		res := m.buf.Run.Run("tag", "--list")
		if !res.Ok() {
			return nil, errFromResult(res)
		}
		return splitLines(res.Stdout), nil
	default:
		res := m.buf.Run.Run("branch", git.BranchFormatFlag())
		if !res.Ok() {
			return nil, errFromResult(res)
		}
		var names []string
		for _, b := range git.ParseBranchList(res.Stdout) {
			if !b.Current {
				names = append(names, b.Name)
			}
		}
		return names, nil
	}
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// ── Prompt ──────────────────────────────────────────────────────────────────

func (m Model) openPrompt(label string, onSubmit func(string) tea.Cmd) (tea.Model, tea.Cmd) {
	m.promptLabel = label
	m.onSubmit = onSubmit
	m.input.Reset()
	m.mode = modePrompt
	return m, m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mode = modeStatus
		m.onSubmit = nil
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		submit := m.onSubmit
		m.onSubmit = nil
		m.mode = modeStatus
		if submit == nil {
			return m, nil
		}
		return m, submit(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ── Picker ──────────────────────────────────────────────────────────────────

func (m Model) openPicker(label string, items []string, onPick func(string) tea.Cmd) (tea.Model, tea.Cmd) {
	m.pickLabel = label
	m.pickItems = items
	m.pickCursor = 0
	m.onPick = onPick
	m.mode = modePicker
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "ctrl+g":
		m.mode = modeStatus
		m.onPick = nil
		return m, nil
	case "j", "down":
		if m.pickCursor < len(m.pickItems)-1 {
			m.pickCursor++
		}
		return m, nil
	case "k", "up":
		if m.pickCursor > 0 {
			m.pickCursor--
		}
		return m, nil
	case "enter":
		pick := m.onPick
		m.onPick = nil
		m.mode = modeStatus
		if pick == nil || len(m.pickItems) == 0 {
			return m, nil
		}
		return m, pick(m.pickItems[m.pickCursor])
	}
	return m, nil
}

// ── Commit editor ───────────────────────────────────────────────────────────

func (m Model) updateCommit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mode = modeStatus
		m.commitTA.Blur()
		return m, nil
	case "ctrl+s", "ctrl+d":
		message := strings.TrimSpace(m.commitTA.Value())
		if message == "" {
			return m, func() tea.Msg { return infoMsg{"empty commit message"} }
		}
		m.mode = modeStatus
		m.commitTA.Blur()
		args := append(append([]string{}, m.commitArgs...), "-m", message)
		buf := m.buf
		return m, func() tea.Msg {
			res := buf.Run.RunWrite(args...)
			if !res.Ok() {
				return errMsg{errFromResult(res)}
			}
			if buf.Hooks != nil {
				buf.Hooks.Fire(editor.HookCommitFinished)
			}
			return RefreshMsg{}
		}
	}
	var cmd tea.Cmd
	m.commitTA, cmd = m.commitTA.Update(msg)
	return m, cmd
}
