package editor

import (
	"context"
	"strings"
	"sync"
)

// Registry keeps one Editor session per lesson. Sessions are hydrated from
// the store the first time they are requested.
type Registry struct {
	mu       sync.Mutex
	store    Store
	opts     []Option
	sessions map[string]*Editor
}

func NewRegistry(store Store, opts ...Option) *Registry {
	return &Registry{
		store:    store,
		opts:     opts,
		sessions: map[string]*Editor{},
	}
}

// Session returns the editor for lessonID, creating and loading it on first use.
func (r *Registry) Session(ctx context.Context, lessonID string) (*Editor, error) {
	key := strings.TrimSpace(lessonID)

	r.mu.Lock()
	if existing, ok := r.sessions[key]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	r.mu.Unlock()

	session, err := New(key, r.store, r.opts...)
	if err != nil {
		return nil, err
	}
	if err := session.Load(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[key]; ok {
		return existing, nil
	}
	r.sessions[key] = session
	return session, nil
}

// Close drops the session for lessonID. Unsynchronized changes are lost.
func (r *Registry) Close(lessonID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, strings.TrimSpace(lessonID))
}

// Invalidate drops the session for lessonID so the next request reloads it
// from the store. A session with an open edit or unsynchronized changes is
// kept and the matching lock error is returned.
func (r *Registry) Invalidate(lessonID string) error {
	key := strings.TrimSpace(lessonID)
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[key]
	if !ok {
		return nil
	}
	session.mu.Lock()
	err := session.idleLocked()
	session.mu.Unlock()
	if err != nil {
		return err
	}
	delete(r.sessions, key)
	return nil
}

// Lessons lists the ids of open sessions.
func (r *Registry) Lessons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}
