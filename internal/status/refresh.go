package status

import (
	"strconv"

	"github.com/jax-editor/git-mode/internal/editor"
	"github.com/jax-editor/git-mode/internal/git"
	"github.com/jax-editor/git-mode/internal/gitcmd"
)

// snapshot slot identifiers. Each refresh round fires one command per slot
// and drains exactly that many completions before rendering.
const (
	slotStatus   = "status"
	slotDiff     = "diff"
	slotCached   = "diff-cached"
	slotLog      = "log"
	slotStash    = "stash"
	slotUnpushed = "unpushed"
	slotUnpulled = "unpulled"
)

type slotResult struct {
	slot string
	res  gitcmd.Result
}

// Refresh collects a fresh snapshot set and re-renders the buffer. It is
// single-flight: a call while another refresh is in flight returns false
// immediately. The guard clears only after the render completes.
func (b *Buffer) Refresh() bool {
	if !b.refreshing.CompareAndSwap(false, true) {
		return false
	}
	defer b.refreshing.Store(false)

	data := b.collect()

	b.mu.Lock()
	b.data = data
	b.rerenderLocked()
	b.mu.Unlock()

	if b.Hooks != nil {
		b.Hooks.Fire(editor.HookStatusRefreshed)
	}
	return true
}

// collect fans out the snapshot commands concurrently and parses each result
// as it is drained. A failing slot degrades to empty — a partial status is
// preferable to none.
func (b *Buffer) collect() *Data {
	n := strconv.Itoa(b.LogMaxCount)
	upstream := b.Info.UpstreamRef("")

	type slot struct {
		id   string
		args []string
	}
	slots := []slot{
		{slotStatus, []string{"status", "--porcelain=v2", "--branch"}},
		{slotDiff, []string{"diff"}},
		{slotCached, []string{"diff", "--cached"}},
		{slotLog, []string{"log", git.LogFormatFlag(), "-" + n}},
		{slotStash, []string{"stash", "list"}},
	}
	if upstream != "" {
		slots = append(slots,
			slot{slotUnpushed, []string{"log", git.LogFormatFlag(), "-" + n, upstream + "..HEAD"}},
			slot{slotUnpulled, []string{"log", git.LogFormatFlag(), "-" + n, "HEAD.." + upstream}},
		)
	}

	ch := make(chan slotResult, len(slots))
	for _, s := range slots {
		go func(s slot) {
			ch <- slotResult{slot: s.id, res: b.Run.Run(s.args...)}
		}(s)
	}

	data := &Data{Snap: &git.Snapshot{}, Upstream: upstream}
	for range slots {
		r := <-ch
		if !r.res.Ok() {
			continue
		}
		switch r.slot {
		case slotStatus:
			data.Snap = git.ParseStatus(r.res.Stdout)
		case slotDiff:
			data.Unstaged = git.ParseDiff(r.res.Stdout)
		case slotCached:
			data.Staged = git.ParseDiff(r.res.Stdout)
		case slotLog:
			data.Log = git.ParseLog(r.res.Stdout)
		case slotStash:
			data.Stashes = git.ParseStashList(r.res.Stdout)
		case slotUnpushed:
			data.Unpushed = git.ParseLog(r.res.Stdout)
		case slotUnpulled:
			data.Unpulled = git.ParseLog(r.res.Stdout)
		}
	}
	return data
}
