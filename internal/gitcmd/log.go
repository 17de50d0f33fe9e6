package gitcmd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jax-editor/git-mode/internal/editor"
)

// DefaultLogLines caps the process-log buffer before truncation.
const DefaultLogLines = 5000

// ProcessLog is the process-wide record of git invocations, backed by a
// read-only editor buffer. One record per invocation:
//
//	$ git status --porcelain=v2  [0.03s, ok]
//	<stdout>
//
// Failures carry "exit N" in the tag and stderr as the body; records fed via
// stdin append "<<stdin" after the command. When the line cap is exceeded
// the oldest lines are dropped.
type ProcessLog struct {
	mu      sync.Mutex
	buf     *editor.MemBuffer
	maxLine int
}

// NewProcessLog returns a log capped at maxLines (<= 0 uses DefaultLogLines).
func NewProcessLog(maxLines int) *ProcessLog {
	if maxLines <= 0 {
		maxLines = DefaultLogLines
	}
	buf := editor.NewMemBuffer()
	buf.SetReadOnly(true)
	return &ProcessLog{buf: buf, maxLine: maxLines}
}

// Buffer exposes the backing buffer for display.
func (l *ProcessLog) Buffer() *editor.MemBuffer { return l.buf }

// AppendRecord appends one invocation record.
func (l *ProcessLog) AppendRecord(args []string, hadStdin bool, res Result) {
	var b strings.Builder
	b.WriteString("$ git ")
	b.WriteString(strings.Join(args, " "))
	if hadStdin {
		b.WriteString("<<stdin")
	}
	secs := res.Elapsed.Seconds()
	if res.Ok() {
		fmt.Fprintf(&b, "  [%.2fs, ok]\n", secs)
		b.WriteString(res.Stdout)
	} else {
		fmt.Fprintf(&b, "  [%.2fs, exit %d]\n", secs, res.ExitCode)
		b.WriteString(res.Stderr)
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	l.append(b.String())
}

// AppendError records a spawn failure as a single ERROR: line.
func (l *ProcessLog) AppendError(msg string) {
	msg = strings.ReplaceAll(strings.TrimSpace(msg), "\n", " ")
	l.append("ERROR: " + msg + "\n\n")
}

func (l *ProcessLog) append(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.SetReadOnly(false)
	l.buf.Insert(l.buf.Len(), text)
	if over := l.buf.LineCount() - l.maxLine; over > 0 {
		l.buf.Delete(0, l.buf.LineStart(over))
	}
	l.buf.SetReadOnly(true)
}
