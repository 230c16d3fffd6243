// Package session keeps calculator states for remote callers.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"abacus/abacusos/calc"
	"abacus/internal/metrics"
)

// DefaultID names the session used when a caller gives no id. It is created
// on first use and never expires.
const DefaultID = "default"

const maxSessions = 64

var (
	ErrNotFound = errors.New("session not found")
	ErrFull     = errors.New("too many open sessions")
)

// Snapshot is the visible state of one session.
type Snapshot struct {
	Session     string            `yaml:"session"               json:"session"`
	Display     string            `yaml:"display"               json:"display"`
	ClearLabel  string            `yaml:"clear_label"           json:"clear_label"`
	First       string            `yaml:"first,omitempty"       json:"first,omitempty"`
	Operator    string            `yaml:"operator,omitempty"    json:"operator,omitempty"`
	Second      string            `yaml:"second,omitempty"      json:"second,omitempty"`
	Evaluations []calc.Evaluation `yaml:"evaluations,omitempty" json:"evaluations,omitempty"`
}

func (s Snapshot) Text() string { return s.Display }

type entry struct {
	state calc.State
	used  time.Time
}

// Store maps session ids to calculator states. Sessions idle for longer
// than the TTL are dropped when a new one is opened; a zero TTL keeps them
// until closed.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewStore creates an empty store. m may be nil.
func NewStore(ttl time.Duration, m *metrics.Metrics) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		metrics:  m,
		now:      time.Now,
	}
}

// Open starts a fresh session and returns its id.
func (s *Store) Open() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	if len(s.sessions) >= maxSessions {
		return "", ErrFull
	}
	id := uuid.NewString()
	s.sessions[id] = &entry{state: calc.NewState(), used: s.now()}
	s.metrics.SessionOpened()
	return id, nil
}

// Close drops a session.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	s.metrics.SessionClosed()
	return nil
}

// Press applies a key script (see calc.ParseKeys) to a session. The script
// is parsed before any key is applied, so a bad script leaves the state
// unchanged.
func (s *Store) Press(id, script string) (Snapshot, error) {
	keys, err := calc.ParseKeys(script)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, e, err := s.lookupLocked(id)
	if err != nil {
		return Snapshot{}, err
	}

	var evals []calc.Evaluation
	for _, k := range keys {
		var ev *calc.Evaluation
		e.state, ev = calc.Apply(e.state, k)
		s.metrics.ObserveKey(k, ev)
		if ev != nil {
			evals = append(evals, *ev)
		}
	}
	snap := snapshot(id, e.state)
	snap.Evaluations = evals
	return snap, nil
}

// Get returns a session's state without changing it.
func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, e, err := s.lookupLocked(id)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot(id, e.state), nil
}

// Len reports the number of open sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) lookupLocked(id string) (string, *entry, error) {
	if id == "" {
		id = DefaultID
	}
	e, ok := s.sessions[id]
	if !ok {
		if id != DefaultID {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		e = &entry{state: calc.NewState()}
		s.sessions[id] = e
		s.metrics.SessionOpened()
	}
	e.used = s.now()
	return id, e, nil
}

func (s *Store) expireLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if id != DefaultID && e.used.Before(cutoff) {
			delete(s.sessions, id)
			s.metrics.SessionClosed()
		}
	}
}

func snapshot(id string, st calc.State) Snapshot {
	return Snapshot{
		Session:    id,
		Display:    st.Display(),
		ClearLabel: string(st.ClearLabel),
		First:      st.First,
		Operator:   st.Operator,
		Second:     st.Second,
	}
}
