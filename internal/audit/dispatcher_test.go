package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (s *recordingSink) Write(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDeliversToAllSinks(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{err: errors.New("redis down")}
	d := NewDispatcher(zap.NewNop(), 10, a, b)

	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment", EntityID: "1"})
	d.Dispatch(Event{Action: "appointment_deleted", Entity: "appointment", EntityID: "1"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if a.count() != 2 || b.count() != 2 {
		t.Fatalf("expected 2 events per sink, got %d and %d", a.count(), b.count())
	}
	if a.events[0].At.IsZero() {
		t.Fatal("expected timestamp to be filled in")
	}
	if a.events[1].Action != "appointment_deleted" {
		t.Fatalf("events out of order: %+v", a.events)
	}
}

func TestDispatchDropsWhenQueueFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(zap.NewNop(), 1, sink)

	// One event is held by the blocked worker, one fills the queue, the
	// rest must be dropped without blocking.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Dispatch(Event{Action: "appointment_created"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	close(sink.block)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatal(err)
	}

	if got := sink.count(); got < 1 || got > 2 {
		t.Fatalf("expected 1 or 2 delivered events, got %d", got)
	}
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(zap.NewNop(), 4, sink)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatal(err)
	}

	d.Dispatch(Event{Action: "appointment_created"})

	if err := d.Close(ctx); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if sink.count() != 0 {
		t.Fatalf("expected no delivered events, got %d", sink.count())
	}
}
