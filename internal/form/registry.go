package form

import (
	"strings"
	"sync"
	"time"
)

// DefaultIdleTTL is how long an idle form keeps its state after last use.
const DefaultIdleTTL = 15 * time.Minute

type registryEntry[T comparable] struct {
	form    T
	touched time.Time
}

// Registry holds one form per key, typically a client session plus a form
// name. Forms are created on first use and dropped once they have been idle
// for longer than the registry's TTL.
type Registry[T comparable] struct {
	mu        sync.Mutex
	forms     map[string]registryEntry[T]
	newFn     func(release func()) T
	idle      func(T) bool
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRegistry creates a registry whose forms are built by newFn. The release
// func handed to newFn removes that form from the registry. idle reports
// whether a form may be dropped; a form that is submitting never is.
func NewRegistry[T comparable](newFn func(release func()) T, idle func(T) bool, ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		forms: make(map[string]registryEntry[T]),
		newFn: newFn,
		idle:  idle,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the form stored under key, creating it if needed.
func (r *Registry[T]) Get(key string) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	if e, ok := r.forms[key]; ok {
		e.touched = now
		r.forms[key] = e
		return e.form
	}
	var f T
	f = r.newFn(func() { r.remove(key, f) })
	r.forms[key] = registryEntry[T]{form: f, touched: now}
	return f
}

// Peek returns the form stored under key without creating one.
func (r *Registry[T]) Peek(key string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.forms[key]
	if ok && r.expiredLocked(e, r.now()) {
		delete(r.forms, key)
		var zero T
		return zero, false
	}
	return e.form, ok
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Forget drops every idle form of clientID.
func (r *Registry[T]) Forget(clientID string) {
	prefix := clientID + "/"
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.forms {
		if strings.HasPrefix(key, prefix) && r.idle(e.form) {
			delete(r.forms, key)
		}
	}
}

// Sweep drops every idle form older than the TTL.
func (r *Registry[T]) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSweep = time.Time{}
	r.sweepLocked(r.now())
}

// sweepLocked runs at most twice per TTL so Get stays cheap.
func (r *Registry[T]) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.ttl/2 {
		return
	}
	r.lastSweep = now
	for key, e := range r.forms {
		if r.expiredLocked(e, now) {
			delete(r.forms, key)
		}
	}
}

func (r *Registry[T]) expiredLocked(e registryEntry[T], now time.Time) bool {
	return now.Sub(e.touched) > r.ttl && r.idle(e.form)
}

func (r *Registry[T]) remove(key string, f T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.forms[key]; ok && cur.form == f {
		delete(r.forms, key)
	}
}

// Key joins a client session and a form name.
func Key(clientID, name string) string {
	return clientID + "/" + name
}
