package status

import "sync/atomic"

// MaxStringLen caps stored strings; HUD fields are short
const MaxStringLen = 32

// AtomicString provides atomic string access
// Zero value is ready to use (empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncating to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
