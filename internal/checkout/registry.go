package checkout

import (
	"sync"
	"time"
)

// DefaultBridgeTTL is how long an unfinished checkout stays resolvable.
const DefaultBridgeTTL = 3 * time.Hour

type registryEntry struct {
	bridge     *Bridge
	attachedAt time.Time
}

// Registry keeps the live bridge of each session and resolves approvals by
// the provider order id returned from CreateOrder. Bridges that never reach
// a terminal state are evicted after the TTL.
type Registry struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	bySession map[string]registryEntry
	byOrder   map[string]*Bridge
}

// NewRegistry returns a registry evicting bridges older than ttl. A
// non-positive ttl uses DefaultBridgeTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultBridgeTTL
	}
	return &Registry{
		ttl:       ttl,
		now:       time.Now,
		bySession: make(map[string]registryEntry),
		byOrder:   make(map[string]*Bridge),
	}
}

// Current returns the session's live bridge, if any.
func (r *Registry) Current(sessionID string) (*Bridge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	e, ok := r.bySession[sessionID]
	return e.bridge, ok
}

// Attach makes b the session's live bridge and detaches the previous one.
func (r *Registry) Attach(b *Bridge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	if prev, ok := r.bySession[b.SessionID()]; ok && prev.bridge != b {
		prev.bridge.Detach()
		r.dropOrdersOf(prev.bridge)
	}
	r.bySession[b.SessionID()] = registryEntry{bridge: b, attachedAt: r.now()}
}

// Drop detaches and forgets the session's live bridge.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.bySession[sessionID]; ok {
		e.bridge.Detach()
		r.dropOrdersOf(e.bridge)
		delete(r.bySession, sessionID)
	}
}

// Bind indexes b by the provider order id. Only the session's live bridge
// can be bound.
func (r *Registry) Bind(orderID string, b *Bridge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.bySession[b.SessionID()]; ok && e.bridge == b {
		r.byOrder[orderID] = b
	}
}

func (r *Registry) Lookup(orderID string) (*Bridge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	b, ok := r.byOrder[orderID]
	return b, ok
}

// Release forgets b once it reached a terminal state.
func (r *Registry) Release(b *Bridge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.bySession[b.SessionID()]; ok && cur.bridge == b {
		delete(r.bySession, b.SessionID())
	}
	r.dropOrdersOf(b)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bySession)
}

// evictExpired drops bridges older than the TTL, except one that is
// Processing: its submission still has to finish.
func (r *Registry) evictExpired() {
	cutoff := r.now().Add(-r.ttl)
	for sid, e := range r.bySession {
		if e.attachedAt.After(cutoff) || e.bridge.State() == Processing {
			continue
		}
		e.bridge.Detach()
		r.dropOrdersOf(e.bridge)
		delete(r.bySession, sid)
	}
}

func (r *Registry) dropOrdersOf(b *Bridge) {
	for id, ob := range r.byOrder {
		if ob == b {
			delete(r.byOrder, id)
		}
	}
}
