package gitcmd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendRecordSuccess(t *testing.T) {
	l := NewProcessLog(100)
	l.AppendRecord([]string{"status", "--porcelain=v2"}, false, Result{
		Stdout: "# branch.head main\n", Elapsed: 30 * time.Millisecond,
	})
	text := l.Buffer().Text()
	assert.True(t, strings.HasPrefix(text, "$ git status --porcelain=v2  [0.03s, ok]\n"))
	assert.Contains(t, text, "# branch.head main\n")
	assert.True(t, strings.HasSuffix(text, "\n\n"))
}

func TestAppendRecordFailure(t *testing.T) {
	l := NewProcessLog(100)
	l.AppendRecord([]string{"push"}, false, Result{
		ExitCode: 128, Stderr: "fatal: no upstream\n", Elapsed: time.Second,
	})
	text := l.Buffer().Text()
	assert.Contains(t, text, "$ git push  [1.00s, exit 128]\n")
	assert.Contains(t, text, "fatal: no upstream\n")
}

func TestAppendRecordStdin(t *testing.T) {
	l := NewProcessLog(100)
	l.AppendRecord([]string{"apply", "--cached"}, true, Result{Elapsed: time.Millisecond})
	assert.Contains(t, l.Buffer().Text(), "$ git apply --cached<<stdin  [0.00s, ok]\n")
}

func TestAppendError(t *testing.T) {
	l := NewProcessLog(100)
	l.AppendError("exec: \"git\": executable file not found in $PATH")
	text := l.Buffer().Text()
	assert.True(t, strings.HasPrefix(text, "ERROR: "))
	assert.Contains(t, text, "executable file not found")
}

func TestLogTruncation(t *testing.T) {
	l := NewProcessLog(10)
	for i := 0; i < 20; i++ {
		l.AppendRecord([]string{"status"}, false, Result{Stdout: "line\n"})
	}
	assert.LessOrEqual(t, l.Buffer().LineCount(), 10)
}

func TestLogReadOnlyOutsideWrites(t *testing.T) {
	l := NewProcessLog(100)
	assert.True(t, l.Buffer().ReadOnly())
	l.AppendRecord([]string{"status"}, false, Result{})
	assert.True(t, l.Buffer().ReadOnly())
}

func TestResultHelpers(t *testing.T) {
	ok := Result{ExitCode: 0}
	assert.True(t, ok.Ok())

	failed := Result{ExitCode: 1, Stderr: "error: bad thing\nhint: more\n"}
	assert.False(t, failed.Ok())
	assert.Equal(t, "error: bad thing", failed.FirstErrLine())

	assert.Empty(t, Result{}.FirstErrLine())
}
