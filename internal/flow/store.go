package flow

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	imagepkg "github.com/youruser/photoframe/internal/image"
)

var ErrUnknownSession = errors.New("unknown session")

// Slot holds the newest composite offered for a session.
type Slot struct {
	latest *imagepkg.CompositeResult
}

// Offer keeps r unless a result from a later revision is already held.
func (s *Slot) Offer(r *imagepkg.CompositeResult) bool {
	if r == nil {
		return false
	}
	if s.latest != nil && r.Revision < s.latest.Revision {
		return false
	}
	s.latest = r
	return true
}

// Current returns the held result only if it was built from revision rev.
func (s *Slot) Current(rev uint64) *imagepkg.CompositeResult {
	if s.latest == nil || s.latest.Revision != rev {
		return nil
	}
	return s.latest
}

type session struct {
	state   State
	slot    Slot
	touched time.Time
}

// Store keeps sessions in memory. Handles that a transition drops are passed
// to the release func outside the lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	release  func(handles ...string)
	now      func() time.Time
}

func NewStore(release func(handles ...string)) *Store {
	if release == nil {
		release = func(...string) {}
	}
	return &Store{
		sessions: map[string]*session{},
		release:  release,
		now:      time.Now,
	}
}

// Create starts a session in the initial state.
func (s *Store) Create() (string, State) {
	id := uuid.NewString()
	st := Initial()
	s.mu.Lock()
	s.sessions[id] = &session{state: st, touched: s.now()}
	s.mu.Unlock()
	return id, st
}

// Get returns the session's current state.
func (s *Store) Get(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return State{}, ErrUnknownSession
	}
	sess.touched = s.now()
	return sess.state, nil
}

// Update replaces the session's state with fn's result. When fn fails the
// state is left as it was.
func (s *Store) Update(id string, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return State{}, ErrUnknownSession
	}
	prev := sess.state
	next, err := fn(prev)
	if err != nil {
		s.mu.Unlock()
		return prev, err
	}
	sess.state = next
	sess.touched = s.now()
	s.mu.Unlock()

	if dropped := Released(prev, next); len(dropped) > 0 {
		s.release(dropped...)
	}
	return next, nil
}

// Offer hands a finished composite to the session. Results from older
// revisions than the one held are discarded.
func (s *Store) Offer(id string, r *imagepkg.CompositeResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	return sess.slot.Offer(r)
}

// Current returns the state and, if one matches its revision, the composite.
func (s *Store) Current(id string) (State, *imagepkg.CompositeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return State{}, nil, ErrUnknownSession
	}
	sess.touched = s.now()
	return sess.state, sess.slot.Current(sess.state.Revision), nil
}

// Delete ends a session and releases everything it referenced.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		s.release(sess.state.Handles()...)
	}
}

// Sweep deletes sessions idle for longer than ttl and returns how many went.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	var handles []string
	n := 0
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			handles = append(handles, sess.state.Handles()...)
			delete(s.sessions, id)
			n++
		}
	}
	s.mu.Unlock()
	if len(handles) > 0 {
		s.release(handles...)
	}
	return n
}

// StartSweeper runs Sweep every interval until stop is closed.
func (s *Store) StartSweeper(interval, ttl time.Duration, stop <-chan struct{}) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.Sweep(ttl)
			case <-stop:
				return
			}
		}
	}()
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
