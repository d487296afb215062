// Package journal records session events to an embedded, in-memory NATS
// JetStream stream so a run's activity can be replayed for inspection.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/session"
)

const (
	streamName     = "listwiz_events"
	subjectRoot    = "listwiz"
	publishTimeout = 2 * time.Second
	fetchBatch     = 1000
)

// SubjectForSession is the wildcard subject of every event in a session.
func SubjectForSession(sessionID string) string {
	return fmt.Sprintf("%s.%s.>", subjectRoot, token(sessionID))
}

// SubjectForEvent is the subject an event of the given kind is published on.
func SubjectForEvent(sessionID string, kind session.EventKind) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, token(sessionID), token(string(kind)))
}

// token makes s safe as a single subject token.
func token(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, s)
}

// Journal owns the embedded server, its connection and the event stream.
type Journal struct {
	ns     *server.Server
	nc     *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream

	mu     sync.Mutex
	closed bool
}

// Start launches the embedded server using dir for JetStream bookkeeping and
// creates the event stream.
func Start(ctx context.Context, dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}
	ns, err := startServer(dir)
	if err != nil {
		return nil, fmt.Errorf("starting journal server: %w", err)
	}
	nc, err := connectInProcess(ns)
	if err != nil {
		_ = shutdown(nil, ns)
		return nil, fmt.Errorf("connecting to journal server: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		_ = shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{subjectRoot + ".>"},
		Storage:  jetstream.MemoryStorage,
	})
	if err != nil {
		_ = shutdown(nc, ns)
		return nil, fmt.Errorf("creating event stream: %w", err)
	}
	return &Journal{ns: ns, nc: nc, js: js, stream: stream}, nil
}

// Publish writes one event. A zero timestamp is set to now.
func (j *Journal) Publish(ctx context.Context, ev session.Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	subject := SubjectForEvent(ev.Session, ev.Kind)
	ack, err := j.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	logger.Debug("Journaled %s/%s seq=%d", ev.Kind, ev.Action, ack.Sequence)
	return nil
}

// Record publishes ev and logs any failure. It has the shape of a session
// listener and never reports errors back into the session.
func (j *Journal) Record(ev session.Event) {
	j.mu.Lock()
	closed := j.closed
	j.mu.Unlock()
	if closed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := j.Publish(ctx, ev); err != nil {
		logger.Warn("Journal: %v", err)
	}
}

// Attach records every event of store until the returned function is called.
func (j *Journal) Attach(store *session.Store) (detach func()) {
	return store.Subscribe(j.Record)
}

// History replays the events of one session in publish order. Entries that
// fail to decode are skipped with a warning. Each event's ID is its stream
// sequence.
func (j *Journal) History(ctx context.Context, sessionID string) ([]session.Event, error) {
	consumer, err := j.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: SubjectForSession(sessionID),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}
	defer func() {
		if err := j.stream.DeleteConsumer(context.Background(), consumer.CachedInfo().Name); err != nil {
			logger.Debug("Journal: deleting consumer: %v", err)
		}
	}()

	var (
		events    []session.Event
		malformed int
	)
	for {
		msgs, err := consumer.FetchNoWait(fetchBatch)
		if err != nil {
			break
		}
		count := 0
		for msg := range msgs.Messages() {
			count++
			var ev session.Event
			if err := json.Unmarshal(msg.Data(), &ev); err != nil {
				malformed++
				_ = msg.Ack()
				continue
			}
			if ev.ID == "" {
				if meta, err := msg.Metadata(); err == nil {
					ev.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
				}
			}
			events = append(events, ev)
			_ = msg.Ack()
		}
		if err := msgs.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
			return events, fmt.Errorf("reading events: %w", err)
		}
		if count < fetchBatch {
			break
		}
	}
	if malformed > 0 {
		logger.Warn("Journal: skipped %d malformed events for session %s", malformed, sessionID)
	}
	return events, nil
}

// Close drains the connection and stops the server. It is safe to call twice.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.mu.Unlock()
	return shutdown(j.nc, j.ns)
}
