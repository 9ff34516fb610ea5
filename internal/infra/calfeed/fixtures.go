package calfeed

import "sync"

// FixtureSet holds canned ICS bodies keyed by source URL. Fixtures back
// offline/demo sources (mock:// URLs) and double as the substitute body
// when a real fetch fails.
type FixtureSet struct {
	mu     sync.RWMutex
	bodies map[string]string
}

// NewFixtureSet constructs an empty registry.
func NewFixtureSet() *FixtureSet {
	return &FixtureSet{bodies: make(map[string]string)}
}

// Register installs a fixture body for the exact source URL.
func (f *FixtureSet) Register(url, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[url] = body
}

// Lookup returns the fixture registered for the URL, if any.
func (f *FixtureSet) Lookup(url string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	body, ok := f.bodies[url]
	return body, ok
}
