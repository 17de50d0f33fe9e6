// Package watcher is the standalone front-end's stand-in for the editor's
// after-save event. Inside a real editor the host fires after-save from its
// own save path and no filesystem watching happens; the terminal binary has
// no such host, so it watches the repository root (one level, not the whole
// tree) plus the handful of .git state files that change on meaningful git
// operations. Bursts are coalesced via a debounce window with jitter so
// multiple instances on the same repo don't stampede git together.
package watcher

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when a save-like change is detected.
type Event struct{}

// Watch monitors the repository for save-like changes and sends Event
// values on the returned channel. gitDir is the absolute path to the .git
// directory. Call the returned stop function to tear down the watcher.
func Watch(repoRoot, gitDir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	targets := []string{
		repoRoot,                            // top-level file saves
		gitDir,                              // HEAD, index, MERGE_HEAD etc.
		filepath.Join(gitDir, "refs"),       // ref updates
		filepath.Join(gitDir, "refs/heads"), // local branch changes
	}
	for _, t := range targets {
		if info, statErr := os.Stat(t); statErr == nil && info.IsDir() {
			if addErr := w.Add(t); addErr != nil {
				continue
			}
		}
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads instances watching the same repo across time.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if shouldIgnore(ev.Name) {
					continue
				}
				jitter := time.Duration(rand.Int64N(int64(jitterRange) + 1))
				d := debounce + jitter
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore filters events that must not trigger a refresh. Git lock
// files are transient and held mid-operation; re-invoking git while it
// holds one stalls both sides.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// Editor swap/temp files.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	// COMMIT_EDITMSG fires while a commit message is being typed.
	if base == "COMMIT_EDITMSG" {
		return true
	}

	if base == "gc.log" || strings.HasPrefix(base, "fsmonitor") {
		return true
	}

	return false
}
