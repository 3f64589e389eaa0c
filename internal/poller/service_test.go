package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"homeworkbot/internal/eventbus"
	"homeworkbot/internal/practicum"
	logx "homeworkbot/pkg/logx"
)

func TestStartRunsImmediateCycle(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	src.next = func(int64) (*practicum.RawResponse, error) { return body(t, emptyList), nil }
	n := &fakeNotifier{}
	bus := eventbus.New()
	ch, unsub := bus.Subscribe(8)
	defer unsub()

	// One hour between fires: anything we observe below is the immediate cycle.
	s := New(Config{Schedule: "1h"}, src, n, logx.Nop(), bus)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop(context.Background())

	select {
	case e := <-ch:
		if e.Type != "poll.idle" {
			t.Fatalf("event = %q, want poll.idle", e.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no cycle ran after Start")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	s := New(Config{Schedule: "soon"}, &fakeSource{}, &fakeNotifier{}, logx.Nop(), nil)
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Start accepted an unparseable schedule")
	}
}

func TestTickSkipsOverlap(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	src := &fakeSource{}
	src.next = func(int64) (*practicum.RawResponse, error) {
		once.Do(func() { close(started) })
		<-release
		return body(t, emptyList), nil
	}
	n := &fakeNotifier{}
	bus := eventbus.New()
	ch, unsub := bus.Subscribe(8)
	defer unsub()

	s := New(Config{}, src, n, logx.Nop(), bus)
	ctx := context.Background()

	go s.tick(ctx)
	<-started
	s.tick(ctx) // must return without fetching: a cycle is in flight
	close(release)

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle never finished")
	}
	if calls := src.sinceSeen(); len(calls) != 1 {
		t.Fatalf("fetch calls = %d, want 1", len(calls))
	}
}

func TestTickHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	src.next = func(int64) (*practicum.RawResponse, error) { return body(t, emptyList), nil }
	s := New(Config{}, src, &fakeNotifier{}, logx.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.tick(ctx)

	if calls := src.sinceSeen(); len(calls) != 0 {
		t.Fatalf("fetch calls = %d, want 0", len(calls))
	}
}
