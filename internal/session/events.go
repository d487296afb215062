package session

import (
	"time"

	"github.com/mark3labs/listwiz/internal/listing"
)

// EventKind groups store events by the part of the session they touch.
type EventKind string

const (
	KindStep    EventKind = "step"
	KindStatus  EventKind = "status"
	KindErrors  EventKind = "errors"
	KindDraft   EventKind = "draft"
	KindMedia   EventKind = "media"
	KindBypass  EventKind = "bypass"
	KindSession EventKind = "session"
)

// Event describes one change to a session. Events are emitted after the
// change is applied, so listeners observe the new state.
type Event struct {
	ID      string       `json:"id,omitempty"` // journal sequence, set on replay
	At      time.Time    `json:"timestamp"`
	Session string       `json:"session"`
	Kind    EventKind    `json:"type"`
	Action  string       `json:"action"`
	Step    listing.Step `json:"step,omitempty"`
	Detail  string       `json:"data,omitempty"`
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Listeners run synchronously in subscription order and may
// call back into the store.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(kind EventKind, action string, step listing.Step, detail string) {
	ev := Event{
		At:      s.clock(),
		Session: s.id,
		Kind:    kind,
		Action:  action,
		Step:    step,
		Detail:  detail,
	}
	// Snapshot so listeners can unsubscribe while being notified.
	for _, l := range append([]listener(nil), s.listeners...) {
		l.fn(ev)
	}
}
