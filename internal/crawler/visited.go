package crawler

import "sync"

// VisitedSet records every URL already dispatched in the current run. It
// grows monotonically within a run and is replaced wholesale at the start of
// the next scheduled run.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// MarkIfNew atomically records url and reports whether it was new. Two
// callers can never both win the same URL.
func (v *VisitedSet) MarkIfNew(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.urls[url]; ok {
		return false
	}
	v.urls[url] = struct{}{}
	return true
}

// Seen reports whether url has already been dispatched this run.
func (v *VisitedSet) Seen(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.urls[url]
	return ok
}

// Len returns the number of URLs dispatched so far.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.urls)
}
