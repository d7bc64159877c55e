package overlay

import "sync"

// Stack is the ordered registry of open overlays, most recent on top. One
// shared stack spans the whole process because overlays open from nested,
// independently-owned components and a single Escape press must still reach
// exactly one of them. Consumers never touch the stack directly; every
// mutation goes through a Controller or the Escape router here.
type Stack struct {
	mu      sync.Mutex
	entries []stackEntry
}

type stackEntry struct {
	ctrl    *Controller
	restore Focusable
}

var shared = NewStack()

// Shared returns the process-wide stack used by New.
func Shared() *Stack {
	return shared
}

// NewStack creates an independent stack.
func NewStack() *Stack {
	return &Stack{}
}

// Depth returns the number of open overlays.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Top returns the topmost open controller, or nil when nothing is open.
func (s *Stack) Top() *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].ctrl
}

// Escape routes one Escape key-press. Only the topmost overlay reacts:
// it closes if its policy allows, and overlays beneath stay untouched either
// way. The return value reports whether an overlay closed.
func (s *Stack) Escape() bool {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return false
	}
	top := s.entries[len(s.entries)-1]
	if !top.ctrl.opts.CloseOnEscape {
		s.mu.Unlock()
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.mu.Unlock()

	restoreFocus(top.restore)
	return true
}

func (s *Stack) push(c *Controller, restore Focusable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ctrl == c {
			return
		}
	}
	s.entries = append(s.entries, stackEntry{ctrl: c, restore: restore})
}

// remove pops c wherever it sits and restores its recorded focus target.
// Unknown controllers are ignored.
func (s *Stack) remove(c *Controller) {
	s.mu.Lock()
	var restore Focusable
	found := false
	for i, e := range s.entries {
		if e.ctrl == c {
			restore = e.restore
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		restoreFocus(restore)
	}
}

// removeIfTop pops c only when it is the topmost entry.
func (s *Stack) removeIfTop(c *Controller) bool {
	s.mu.Lock()
	n := len(s.entries)
	if n == 0 || s.entries[n-1].ctrl != c {
		s.mu.Unlock()
		return false
	}
	top := s.entries[n-1]
	s.entries = s.entries[:n-1]
	s.mu.Unlock()

	restoreFocus(top.restore)
	return true
}

func (s *Stack) contains(c *Controller) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ctrl == c {
			return true
		}
	}
	return false
}

// restoreFocus runs outside the stack lock: focus handlers may re-enter the
// overlay API (for example to open a follow-up dialog).
func restoreFocus(f Focusable) {
	if f != nil {
		f.Focus()
	}
}
