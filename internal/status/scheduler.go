package status

import (
	"time"

	"github.com/jax-editor/git-mode/internal/editor"
)

// AfterSave schedules a debounced refresh. Each save advances a generation
// counter; the sleeping task proceeds only if no newer save arrived, so the
// last save of a burst is the one that refreshes. done, when non-nil, is
// invoked after the refresh attempt (used by the front-end to repaint and by
// tests to synchronise).
func (b *Buffer) AfterSave(done func()) {
	gen := b.saveGen.Add(1)
	d := b.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	go func() {
		time.Sleep(d)
		if b.saveGen.Load() != gen {
			return
		}
		b.Refresh()
		if done != nil {
			done()
		}
	}()
}

// treeChangingOps are operations after which open file buffers should be
// reverted from disk: the worktree may have been rewritten under them.
var treeChangingOps = map[string]bool{
	"checkout": true,
	"pull":     true,
	"merge":    true,
	"rebase":   true,
	"stash":    true,
}

// RunOperation runs a long-lived git operation (push, pull, fetch, rebase,
// merge, cherry-pick, stash pop) on a background goroutine, fires the
// post-operation hook with the op name, its arguments, and the exit code,
// and schedules a refresh of this repository's status buffer on completion.
// done, when non-nil, receives the operation's error (nil on success).
func (b *Buffer) RunOperation(args []string, done func(err error)) {
	go func() {
		res := b.Run.RunNoEditor(args...)
		op := ""
		if len(args) > 0 {
			op = args[0]
		}
		if b.Hooks != nil {
			b.Hooks.Fire(editor.HookPostOperation, op, args, res.ExitCode)
		}
		b.Refresh()
		if done == nil {
			return
		}
		if res.Ok() {
			done(nil)
		} else {
			done(resultErr(res))
		}
	}()
}

// TreeChanging reports whether the operation can rewrite the worktree,
// meaning unmodified file buffers should reload from disk afterwards.
func TreeChanging(op string) bool { return treeChangingOps[op] }
