package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the status-buffer keybindings. Transient prefixes are
// single keys, mostly lowercase; pull (F), cherry-pick (A) and reset (X)
// are uppercase and push is "!".
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding
	Log     key.Binding

	Up          key.Binding
	Down        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	NextSibling key.Binding
	PrevSibling key.Binding
	Parent      key.Binding

	Toggle key.Binding
	Level1 key.Binding
	Level2 key.Binding
	Level3 key.Binding
	Level4 key.Binding

	Stage   key.Binding
	Unstage key.Binding
	Discard key.Binding
	Visit   key.Binding
	Select  key.Binding

	Commit     key.Binding
	Push       key.Binding
	Pull       key.Binding
	Fetch      key.Binding
	Stash      key.Binding
	Merge      key.Binding
	Rebase     key.Binding
	CherryPick key.Binding
	Reset      key.Binding
	Tag        key.Binding
	Branch     key.Binding
	LogMenu    key.Binding
	DiffMenu   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "refresh")),
		Log:     key.NewBinding(key.WithKeys("$"), key.WithHelp("$", "process log")),

		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		NextSection: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev section")),
		NextSibling: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "next sibling")),
		PrevSibling: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "prev sibling")),
		Parent:      key.NewBinding(key.WithKeys("^"), key.WithHelp("^", "parent section")),

		Toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "expand/collapse")),
		Level1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "collapse all")),
		Level2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sections")),
		Level3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "files")),
		Level4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "expand all")),

		Stage:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stage")),
		Unstage: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unstage")),
		Discard: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard")),
		Visit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "visit")),
		Select:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select lines")),

		Commit:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
		Push:       key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "push")),
		Pull:       key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "pull")),
		Fetch:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch")),
		Stash:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "stash")),
		Merge:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
		Rebase:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebase")),
		CherryPick: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "cherry-pick")),
		Reset:      key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "reset")),
		Tag:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag")),
		Branch:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "branch")),
		LogMenu:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log")),
		DiffMenu:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diff")),
	}
}
