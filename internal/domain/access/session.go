package access

import "sync"

// Session guards against profile-fetch races on rapid navigation. Each
// navigation begins a new generation; a fetch result tagged with an old
// generation is discarded instead of being applied to the new path.
//
// A cached gate decision is only as fresh as the profile generation it
// was computed from, so bumping the generation also invalidates any
// memoized outcome.
type Session struct {
	mu  sync.Mutex
	gen uint64

	resolution Resolution
}

// Begin starts a new navigation and returns its generation token. The
// current resolution resets to loading.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.resolution = Loading()
	return s.gen
}

// Deliver applies a fetch result if gen is still current. Stale results
// are dropped and false is returned.
func (s *Session) Deliver(gen uint64, res Resolution) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.resolution = res
	return true
}

// Current returns the resolution as of now. While a fetch is in flight
// this is Loading, and gates evaluated against it return Wait.
func (s *Session) Current() Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolution
}
