package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the application.
func (m Model) View() string {
	switch m.mode {
	case modeView:
		return m.viewPane()
	case modeCommit:
		return m.commitPane()
	}

	var b strings.Builder
	b.WriteString(m.statusPane())

	switch m.mode {
	case modeTransient:
		b.WriteString("\n" + m.transientPane())
	case modePrompt:
		b.WriteString("\n" + m.styles.InfoBar.Render(m.promptLabel+": ") + m.input.View())
	case modePicker:
		b.WriteString("\n" + m.pickerPane())
	case modeConfirm:
		b.WriteString("\n" + m.styles.ErrorBar.Render(m.confirmText))
	default:
		b.WriteString("\n" + m.messageBar())
	}

	if m.showHelp {
		b.WriteString("\n" + m.helpPane())
	}
	return b.String()
}

// ── Status pane ─────────────────────────────────────────────────────────────

func (m Model) statusPane() string {
	vis := m.visibleLines()
	if len(vis) == 0 {
		return m.styles.StatusBar.Render("(empty)")
	}

	height := m.contentHeight()
	scroll := m.scrollFor(len(vis), height)

	selLo, selHi, selOK := m.buf.SelectionRange()
	tree := m.buf.Tree()

	var rows []string
	for i := scroll; i < len(vis) && i-scroll < height; i++ {
		line := vis[i]
		text := m.buf.Buf.Line(line)
		style := m.faceStyle(line)

		// Collapsed nodes show an ellipsis on their heading.
		if tree != nil {
			if n := tree.At(line); n != nil && n.Collapsed && n.Start == line && len(n.Children) > 0 {
				text += "…"
			}
		}

		switch {
		case selOK && line >= selLo && line <= selHi:
			rows = append(rows, m.styles.Selected.Render(text))
		case i == m.cursor:
			rows = append(rows, m.styles.CursorLine.Render(style.Render(text)))
		default:
			rows = append(rows, style.Render(text))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) faceStyle(line int) lipgloss.Style {
	start := m.buf.Buf.LineStart(line)
	if ov, ok := m.buf.Ovl.At(start); ok {
		return m.styles.Face(ov.Face)
	}
	return m.styles.Face("")
}

// scrollFor keeps the cursor inside the window.
func (m Model) scrollFor(total, height int) int {
	scroll := m.scroll
	if m.cursor < scroll {
		scroll = m.cursor
	}
	if m.cursor >= scroll+height {
		scroll = m.cursor - height + 1
	}
	if max := total - height; scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

func (m Model) messageBar() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return m.styles.ErrorBar.Render(m.statusMsg)
		}
		return m.styles.InfoBar.Render(m.statusMsg)
	}
	return m.styles.StatusBar.Render(fmt.Sprintf("%s  ?: help  q: quit", m.buf.Root))
}

// ── Transient pane ──────────────────────────────────────────────────────────

func (m Model) transientPane() string {
	t := m.trans
	if t == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.InfoBar.Render(t.cat.Name) + "\n")

	if len(t.cat.Switches) > 0 {
		b.WriteString("Switches\n")
		for _, sw := range t.cat.Switches {
			st := m.styles.SwitchOff
			if t.enabled[sw.Key] {
				st = m.styles.SwitchOn
			}
			fmt.Fprintf(&b, " %s %s (%s)\n",
				m.styles.KeyHint.Render(sw.Key), sw.Help, st.Render(sw.Arg))
		}
	}

	b.WriteString("Actions\n")
	for _, a := range t.cat.Actions {
		fmt.Fprintf(&b, " %s %s\n", m.styles.KeyHint.Render(a.Key), a.Name)
	}
	return m.styles.Transient.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) pickerPane() string {
	var b strings.Builder
	b.WriteString(m.styles.InfoBar.Render(m.pickLabel) + "\n")
	for i, item := range m.pickItems {
		if i == m.pickCursor {
			b.WriteString(m.styles.Selected.Render("> "+item) + "\n")
		} else {
			b.WriteString("  " + item + "\n")
		}
	}
	return m.styles.Transient.Render(strings.TrimRight(b.String(), "\n"))
}

// ── Commit pane ─────────────────────────────────────────────────────────────

func (m Model) commitPane() string {
	var b strings.Builder
	b.WriteString(m.styles.InfoBar.Render("Commit message (ctrl+s to commit, esc to abort)") + "\n\n")
	b.WriteString(m.commitTA.View())
	return b.String()
}

// ── Visit / process-log pane ────────────────────────────────────────────────

func (m Model) viewPane() string {
	height := m.contentHeight()
	var b strings.Builder
	b.WriteString(m.styles.InfoBar.Render(m.viewTitle) + "\n")
	for i := m.viewTop; i < len(m.viewLines) && i-m.viewTop < height; i++ {
		text := m.viewLines[i]
		if i == m.viewLine {
			text = m.styles.CursorLine.Render(text)
		}
		b.WriteString(text + "\n")
	}
	b.WriteString(m.styles.StatusBar.Render("q: back"))
	return b.String()
}

// ── Help pane ───────────────────────────────────────────────────────────────

func (m Model) helpPane() string {
	k := m.keys
	entries := []struct{ key, desc string }{
		{k.Stage.Help().Key, k.Stage.Help().Desc},
		{k.Unstage.Help().Key, k.Unstage.Help().Desc},
		{k.Discard.Help().Key, k.Discard.Help().Desc},
		{k.Visit.Help().Key, k.Visit.Help().Desc},
		{k.Select.Help().Key, k.Select.Help().Desc},
		{k.Toggle.Help().Key, k.Toggle.Help().Desc},
		{k.Commit.Help().Key, k.Commit.Help().Desc},
		{k.Push.Help().Key, k.Push.Help().Desc},
		{k.Pull.Help().Key, k.Pull.Help().Desc},
		{k.Fetch.Help().Key, k.Fetch.Help().Desc},
		{k.Stash.Help().Key, k.Stash.Help().Desc},
		{k.Merge.Help().Key, k.Merge.Help().Desc},
		{k.Rebase.Help().Key, k.Rebase.Help().Desc},
		{k.Refresh.Help().Key, k.Refresh.Help().Desc},
		{k.Log.Help().Key, k.Log.Help().Desc},
	}
	var parts []string
	for _, e := range entries {
		parts = append(parts, m.styles.KeyHint.Render(e.key)+" "+e.desc)
	}
	return m.styles.StatusBar.Render(strings.Join(parts, "  "))
}
