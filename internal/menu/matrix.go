// Package menu declares the command/flag matrix behind the transient menus.
// Each category lists its flag switches (key → git argument) and its actions
// (key → subcommand plus where the positional argument comes from). The
// front-end renders a transient from a category and expands the selected
// switch state into argv via Args.
package menu

// Source names where an action's positional argument comes from.
type Source int

// Positional sources.
const (
	SourceNone       Source = iota
	SourcePrompt            // free-text prompt (rev, message, range)
	SourcePicker            // pick from candidates (remote, branch, tag, stash)
	SourceUpstream          // the configured upstream ref
	SourcePushRemote        // the push-remote cascade
	SourceCommitBuf         // the commit message buffer
)

// Switch is one toggleable flag of a transient.
type Switch struct {
	Key  string // the transient infix, e.g. "-f"
	Arg  string // the git argument it enables
	Help string
}

// Action is one transient suffix.
type Action struct {
	Key    string
	Name   string
	Sub    []string // git subcommand and fixed arguments
	Source Source
	// NoEditor marks operations that must suppress interactive editors.
	NoEditor bool
	// ReadOnly marks actions that only inspect state; they run with the
	// read-optimised environment instead of the write path.
	ReadOnly bool
}

// Category is one transient menu.
type Category struct {
	Name     string
	Switches []Switch
	Actions  []Action
}

// Matrix is the full transient table, keyed by category name.
var Matrix = []Category{
	{
		Name: "commit",
		Switches: []Switch{
			{"-a", "--all", "stage modified and deleted"},
			{"-e", "--allow-empty", "allow empty commit"},
			{"-n", "--no-verify", "skip hooks"},
			{"-s", "--signoff", "add Signed-off-by"},
			{"-R", "--reset-author", "claim authorship"},
			{"-v", "--verbose", "show diff in message buffer"},
		},
		Actions: []Action{
			{Key: "c", Name: "commit", Sub: []string{"commit"}, Source: SourceCommitBuf},
			{Key: "a", Name: "amend", Sub: []string{"commit", "--amend"}, Source: SourceCommitBuf},
			{Key: "w", Name: "reword", Sub: []string{"commit", "--amend", "--only"}, Source: SourceCommitBuf},
		},
	},
	{
		Name: "push",
		Switches: []Switch{
			{"-f", "--force-with-lease", "force with lease"},
			{"-F", "--force", "force"},
			{"-n", "--no-verify", "skip hooks"},
			{"-u", "--set-upstream", "set upstream"},
			{"-h", "--dry-run", "dry run"},
		},
		Actions: []Action{
			{Key: "p", Name: "push to upstream", Sub: []string{"push"}, Source: SourceUpstream},
			{Key: "P", Name: "push to push-remote", Sub: []string{"push"}, Source: SourcePushRemote},
			{Key: "e", Name: "push elsewhere", Sub: []string{"push"}, Source: SourcePicker},
		},
	},
	{
		Name: "pull",
		Switches: []Switch{
			{"-f", "--ff-only", "fast-forward only"},
			{"-r", "--rebase", "rebase instead of merge"},
			{"-A", "--autostash", "autostash"},
			{"-n", "--no-ff", "always create a merge commit"},
			{"-N", "--no-rebase", "never rebase"},
		},
		Actions: []Action{
			{Key: "p", Name: "pull from upstream", Sub: []string{"pull"}, Source: SourceUpstream, NoEditor: true},
			{Key: "P", Name: "pull from push-remote", Sub: []string{"pull"}, Source: SourcePushRemote, NoEditor: true},
			{Key: "e", Name: "pull elsewhere", Sub: []string{"pull"}, Source: SourcePrompt, NoEditor: true},
		},
	},
	{
		Name: "fetch",
		Switches: []Switch{
			{"-p", "--prune", "prune deleted branches"},
			{"-t", "--tags", "fetch all tags"},
			{"-v", "--verbose", "verbose"},
		},
		Actions: []Action{
			{Key: "f", Name: "fetch from upstream", Sub: []string{"fetch"}, Source: SourceUpstream},
			{Key: "P", Name: "fetch from push-remote", Sub: []string{"fetch"}, Source: SourcePushRemote},
			{Key: "e", Name: "fetch elsewhere", Sub: []string{"fetch"}, Source: SourcePicker},
			{Key: "a", Name: "fetch all remotes", Sub: []string{"fetch", "--all"}},
		},
	},
	{
		Name: "stash",
		Switches: []Switch{
			{"-u", "--include-untracked", "include untracked"},
			{"-a", "--all", "include ignored"},
			{"-k", "--keep-index", "keep index"},
		},
		Actions: []Action{
			{Key: "z", Name: "stash push", Sub: []string{"stash", "push"}, Source: SourcePrompt},
			{Key: "i", Name: "stash staged", Sub: []string{"stash", "push", "--staged"}, Source: SourcePrompt},
			{Key: "p", Name: "pop", Sub: []string{"stash", "pop"}, Source: SourcePicker},
			{Key: "a", Name: "apply", Sub: []string{"stash", "apply"}, Source: SourcePicker},
			{Key: "x", Name: "drop", Sub: []string{"stash", "drop"}, Source: SourcePicker},
			{Key: "v", Name: "show", Sub: []string{"stash", "show", "-p"}, Source: SourcePicker, ReadOnly: true},
			{Key: "l", Name: "list", Sub: []string{"stash", "list"}, ReadOnly: true},
		},
	},
	{
		Name: "merge",
		Switches: []Switch{
			{"-f", "--ff-only", "fast-forward only"},
			{"-n", "--no-ff", "no fast-forward"},
			{"-s", "--squash", "squash"},
			{"-c", "--no-commit", "no commit"},
		},
		Actions: []Action{
			{Key: "m", Name: "merge", Sub: []string{"merge"}, Source: SourcePicker, NoEditor: true},
			{Key: "a", Name: "abort", Sub: []string{"merge", "--abort"}},
		},
	},
	{
		Name: "rebase",
		Switches: []Switch{
			{"-A", "--autostash", "autostash"},
			{"-i", "--interactive", "interactive"},
			{"-a", "--autosquash", "autosquash"},
		},
		Actions: []Action{
			{Key: "u", Name: "rebase onto upstream", Sub: []string{"rebase"}, Source: SourceUpstream, NoEditor: true},
			{Key: "e", Name: "rebase onto branch", Sub: []string{"rebase"}, Source: SourcePicker, NoEditor: true},
			{Key: "o", Name: "rebase onto rev", Sub: []string{"rebase"}, Source: SourcePrompt, NoEditor: true},
			{Key: "c", Name: "continue", Sub: []string{"rebase", "--continue"}, NoEditor: true},
			{Key: "s", Name: "skip", Sub: []string{"rebase", "--skip"}, NoEditor: true},
			{Key: "a", Name: "abort", Sub: []string{"rebase", "--abort"}},
		},
	},
	{
		Name: "cherry-pick",
		Switches: []Switch{
			{"-n", "--no-commit", "no commit"},
			{"-e", "--edit", "edit message"},
		},
		Actions: []Action{
			{Key: "p", Name: "pick rev", Sub: []string{"cherry-pick"}, Source: SourcePrompt, NoEditor: true},
			{Key: "c", Name: "continue", Sub: []string{"cherry-pick", "--continue"}, NoEditor: true},
			{Key: "a", Name: "abort", Sub: []string{"cherry-pick", "--abort"}},
		},
	},
	{
		Name: "reset",
		Actions: []Action{
			{Key: "s", Name: "soft", Sub: []string{"reset", "--soft"}, Source: SourcePrompt},
			{Key: "m", Name: "mixed", Sub: []string{"reset", "--mixed"}, Source: SourcePrompt},
			{Key: "h", Name: "hard", Sub: []string{"reset", "--hard"}, Source: SourcePrompt},
		},
	},
	{
		Name: "tag",
		Actions: []Action{
			{Key: "t", Name: "create", Sub: []string{"tag"}, Source: SourcePrompt},
			{Key: "x", Name: "delete", Sub: []string{"tag", "-d"}, Source: SourcePicker},
			{Key: "l", Name: "list", Sub: []string{"tag", "--list"}, ReadOnly: true},
		},
	},
	{
		Name: "branch",
		Actions: []Action{
			{Key: "b", Name: "checkout", Sub: []string{"switch"}, Source: SourcePicker},
			{Key: "c", Name: "create and checkout", Sub: []string{"switch", "-c"}, Source: SourcePrompt},
			{Key: "x", Name: "delete", Sub: []string{"branch", "-d"}, Source: SourcePicker},
		},
	},
	{
		Name: "log",
		Switches: []Switch{
			{"-a", "--all", "all refs"},
			{"-d", "--decorate", "decorate"},
			{"-g", "--graph", "graph"},
		},
		Actions: []Action{
			{Key: "l", Name: "log current", Sub: []string{"log"}, ReadOnly: true},
			{Key: "o", Name: "log branch", Sub: []string{"log"}, Source: SourcePicker, ReadOnly: true},
			{Key: "f", Name: "log file", Sub: []string{"log", "--follow", "--"}, Source: SourcePrompt, ReadOnly: true},
			{Key: "r", Name: "reflog", Sub: []string{"reflog"}, ReadOnly: true},
		},
	},
	{
		Name: "diff",
		Switches: []Switch{
			{"-w", "-w", "ignore whitespace"},
			{"-s", "--stat", "stat only"},
			{"-c", "--cached", "staged changes"},
		},
		Actions: []Action{
			{Key: "d", Name: "diff rev or range", Sub: []string{"diff"}, Source: SourcePrompt, ReadOnly: true},
			{Key: "w", Name: "diff worktree", Sub: []string{"diff"}, ReadOnly: true},
		},
	},
}

// Lookup returns the category by name.
func Lookup(name string) *Category {
	for i := range Matrix {
		if Matrix[i].Name == name {
			return &Matrix[i]
		}
	}
	return nil
}

// Find returns the action bound to key within the category.
func (c *Category) Find(key string) *Action {
	for i := range c.Actions {
		if c.Actions[i].Key == key {
			return &c.Actions[i]
		}
	}
	return nil
}

// Args expands an action plus the enabled switch set into git argv. The
// fixed subcommand comes first, then the enabled switches in declaration
// order, then any positional arguments.
func (c *Category) Args(a *Action, enabled map[string]bool, positional ...string) []string {
	args := append([]string{}, a.Sub...)
	for _, sw := range c.Switches {
		if enabled[sw.Key] {
			args = append(args, sw.Arg)
		}
	}
	for _, p := range positional {
		if p != "" {
			args = append(args, p)
		}
	}
	return args
}
