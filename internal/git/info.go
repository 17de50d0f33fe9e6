package git

import (
	"os/exec"
	"strings"
	"sync"

	"github.com/jax-editor/git-mode/internal/gitcmd"
)

// Executor runs one git command and returns its structural result. It is the
// only seam between this package and the subprocess layer, so repo-info
// helpers can be exercised against canned results in tests.
type Executor interface {
	Run(args ...string) gitcmd.Result
}

// Compile-time check that the real runner satisfies Executor.
var _ Executor = (*gitcmd.Runner)(nil)

var (
	gitAvailOnce sync.Once
	gitAvail     bool
)

// Available reports whether a git binary is on PATH. The answer is cached
// process-wide; entry points short-circuit on false.
func Available() bool {
	gitAvailOnce.Do(func() {
		_, err := exec.LookPath("git")
		gitAvail = err == nil
	})
	return gitAvail
}

// Info answers repository questions by running git through an Executor.
type Info struct {
	Run Executor
}

// RepoRoot returns the absolute repository root, or "" when the working
// directory is not inside a repository.
func (i Info) RepoRoot() string {
	res := i.Run.Run("rev-parse", "--show-toplevel")
	if !res.Ok() {
		return ""
	}
	return firstLine(res.Stdout)
}

// CurrentBranch returns the checked-out branch name, or "" in detached-HEAD
// state.
func (i Info) CurrentBranch() string {
	res := i.Run.Run("symbolic-ref", "--short", "HEAD")
	if !res.Ok() {
		return ""
	}
	return firstLine(res.Stdout)
}

// UpstreamRef returns "<remote>/<branch>" for the configured upstream of the
// branch (current branch when empty), or "" if either config key is missing.
func (i Info) UpstreamRef(branch string) string {
	if branch == "" {
		branch = i.CurrentBranch()
		if branch == "" {
			return ""
		}
	}
	remote := i.config("branch." + branch + ".remote")
	merge := i.config("branch." + branch + ".merge")
	if remote == "" || merge == "" {
		return ""
	}
	return remote + "/" + strings.TrimPrefix(merge, "refs/heads/")
}

// PushRemoteRef resolves the remote `git push` with no arguments would use,
// via the branch.<b>.pushRemote → remote.pushDefault → branch.<b>.remote
// cascade. Returns "<remote>/<branch>", or "" when nothing resolves.
func (i Info) PushRemoteRef(branch string) string {
	if branch == "" {
		branch = i.CurrentBranch()
		if branch == "" {
			return ""
		}
	}
	for _, key := range []string{
		"branch." + branch + ".pushRemote",
		"remote.pushDefault",
		"branch." + branch + ".remote",
	} {
		if remote := i.config(key); remote != "" {
			return remote + "/" + branch
		}
	}
	return ""
}

func (i Info) config(key string) string {
	res := i.Run.Run("config", "--get", key)
	if !res.Ok() {
		return ""
	}
	return firstLine(res.Stdout)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
