package index

import "sync/atomic"

// Session holds the single active index. Uploads swap in a fully built
// replacement; readers take a snapshot at call entry and keep using it
// for the whole request even if a concurrent upload lands meanwhile.
type Session struct {
	current atomic.Pointer[Store]
}

func NewSession() *Session {
	return &Session{}
}

// Current returns the active index snapshot, or nil before the first
// successful upload.
func (s *Session) Current() *Store {
	return s.current.Load()
}

func (s *Session) Swap(store *Store) {
	s.current.Store(store)
}
