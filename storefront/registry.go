package storefront

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	DefaultIdleTTL  = 30 * time.Minute
	DefaultMaxPages = 10000
)

// Registry keeps one Page per visitor, like one open tab each. Pages idle for longer than
// the TTL are swept, and the least recently used page makes room once the registry is full.
type Registry struct {
	backend  Backend
	clock    clock.Clock
	idleTTL  time.Duration
	maxPages int

	mu        sync.Mutex
	pages     map[string]*visitorPage
	lastSweep time.Time
}

type visitorPage struct {
	page     *Page
	lastSeen time.Time
}

type RegistryOption func(*Registry)

func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTTL = d }
}

func WithMaxPages(n int) RegistryOption {
	return func(r *Registry) { r.maxPages = n }
}

func WithRegistryClock(c clock.Clock) RegistryOption {
	return func(r *Registry) { r.clock = c }
}

func NewRegistry(backend Backend, opts ...RegistryOption) *Registry {
	r := &Registry{
		backend:  backend,
		clock:    clock.New(),
		idleTTL:  DefaultIdleTTL,
		maxPages: DefaultMaxPages,
		pages:    make(map[string]*visitorPage),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.clock.Now()
	return r
}

// Page returns the visitor's page, creating an unmounted one on first use.
func (r *Registry) Page(visitorID string) *Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweep(now)
	if vp, ok := r.pages[visitorID]; ok {
		vp.lastSeen = now
		return vp.page
	}
	return r.insert(visitorID, now)
}

// Reload drops the visitor's page and returns a fresh, unmounted one.
func (r *Registry) Reload(visitorID string) *Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweep(now)
	delete(r.pages, visitorID)
	return r.insert(visitorID, now)
}

// Reset forgets the visitor's page.
func (r *Registry) Reset(visitorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, visitorID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

func (r *Registry) insert(visitorID string, now time.Time) *Page {
	if r.maxPages > 0 && len(r.pages) >= r.maxPages {
		r.evictExpired(now)
		for len(r.pages) >= r.maxPages {
			r.evictOldest()
		}
	}
	p := NewPage(r.backend)
	r.pages[visitorID] = &visitorPage{page: p, lastSeen: now}
	return p
}

// sweep runs at most once per quarter TTL.
func (r *Registry) sweep(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < r.idleTTL/4 {
		return
	}
	r.evictExpired(now)
}

func (r *Registry) evictExpired(now time.Time) {
	r.lastSweep = now
	if r.idleTTL <= 0 {
		return
	}
	evicted := 0
	for id, vp := range r.pages {
		if now.Sub(vp.lastSeen) > r.idleTTL {
			delete(r.pages, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Info("evicted %d idle pages, %d left", evicted, len(r.pages))
	}
}

func (r *Registry) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, vp := range r.pages {
		if oldestID == "" || vp.lastSeen.Before(oldest) {
			oldestID, oldest = id, vp.lastSeen
		}
	}
	delete(r.pages, oldestID)
}
