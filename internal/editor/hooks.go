package editor

import "sync"

// Hook events the git layer raises or consumes.
const (
	HookStatusRefreshed = "status-refreshed"
	HookCommitFinished  = "commit-finished"
	HookPostOperation   = "post-operation"
	HookAfterSave       = "after-save"
)

// HookFn receives the event's arguments.
type HookFn func(args ...any)

// Hooks is a minimal event bus. Handlers run synchronously in registration
// order on the firing goroutine.
type Hooks struct {
	mu       sync.Mutex
	handlers map[string][]HookFn
}

// NewHooks returns an empty hook bus.
func NewHooks() *Hooks {
	return &Hooks{handlers: make(map[string][]HookFn)}
}

// Add registers a handler for the event.
func (h *Hooks) Add(event string, fn HookFn) {
	h.mu.Lock()
	h.handlers[event] = append(h.handlers[event], fn)
	h.mu.Unlock()
}

// Fire invokes every handler registered for the event.
func (h *Hooks) Fire(event string, args ...any) {
	h.mu.Lock()
	fns := make([]HookFn, len(h.handlers[event]))
	copy(fns, h.handlers[event])
	h.mu.Unlock()
	for _, fn := range fns {
		fn(args...)
	}
}

// Prompt asks the user for a line of text; on-submit receives the input.
// The terminal front-end satisfies this with its input widget.
type Prompt func(prompt string, onSubmit func(text string))

// Picker asks the user to choose among candidates.
type Picker func(prompt string, candidates []string, onAccept func(choice string))
