package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jax-editor/git-mode/internal/gitcmd"
)

// stubExec answers git invocations from a canned map keyed by the joined
// argument list. Missing keys fail with exit 1.
type stubExec struct {
	out map[string]string
}

func (s stubExec) Run(args ...string) gitcmd.Result {
	key := strings.Join(args, " ")
	if v, ok := s.out[key]; ok {
		return gitcmd.Result{Stdout: v}
	}
	return gitcmd.Result{ExitCode: 1}
}

func TestRepoRoot(t *testing.T) {
	info := Info{Run: stubExec{out: map[string]string{
		"rev-parse --show-toplevel": "/home/ada/project\n",
	}}}
	assert.Equal(t, "/home/ada/project", info.RepoRoot())

	none := Info{Run: stubExec{}}
	assert.Empty(t, none.RepoRoot())
}

func TestCurrentBranch(t *testing.T) {
	info := Info{Run: stubExec{out: map[string]string{
		"symbolic-ref --short HEAD": "main\n",
	}}}
	assert.Equal(t, "main", info.CurrentBranch())

	detached := Info{Run: stubExec{}}
	assert.Empty(t, detached.CurrentBranch(), "detached HEAD has no branch")
}

func TestUpstreamRef(t *testing.T) {
	info := Info{Run: stubExec{out: map[string]string{
		"config --get branch.main.remote": "origin\n",
		"config --get branch.main.merge":  "refs/heads/main\n",
	}}}
	assert.Equal(t, "origin/main", info.UpstreamRef("main"))

	partial := Info{Run: stubExec{out: map[string]string{
		"config --get branch.main.remote": "origin\n",
	}}}
	assert.Empty(t, partial.UpstreamRef("main"), "missing branch.merge")
}

func TestPushRemoteRefCascade(t *testing.T) {
	full := map[string]string{
		"config --get branch.main.pushRemote": "origin2\n",
		"config --get remote.pushDefault":     "origin3\n",
		"config --get branch.main.remote":     "origin\n",
	}

	info := Info{Run: stubExec{out: full}}
	assert.Equal(t, "origin2/main", info.PushRemoteRef("main"))

	delete(full, "config --get branch.main.pushRemote")
	assert.Equal(t, "origin3/main", info.PushRemoteRef("main"))

	delete(full, "config --get remote.pushDefault")
	assert.Equal(t, "origin/main", info.PushRemoteRef("main"))

	delete(full, "config --get branch.main.remote")
	assert.Empty(t, info.PushRemoteRef("main"))
}

func TestPushRemoteRefUsesCurrentBranch(t *testing.T) {
	info := Info{Run: stubExec{out: map[string]string{
		"symbolic-ref --short HEAD":          "feature\n",
		"config --get branch.feature.remote": "origin\n",
	}}}
	assert.Equal(t, "origin/feature", info.PushRemoteRef(""))
}
