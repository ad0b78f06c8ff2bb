package server

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler(t0)
	var got []string
	record := func(name string) func(time.Time) {
		return func(now time.Time) {
			got = append(got, fmt.Sprintf("%s@%d", name, now.Sub(t0).Milliseconds()))
		}
	}
	s.Every("a", time.Second, record("a"))
	s.Every("b", 500*time.Millisecond, record("b"))
	s.Every("c", time.Second, record("c"))
	s.Arm("a", "b", "c")

	s.Advance(time.Second)

	want := []string{"b@500", "a@1000", "b@1000", "c@1000"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("dispatch order = %v, want %v", got, want)
	}
	if !s.Now().Equal(t0.Add(time.Second)) {
		t.Errorf("clock = %v, want %v", s.Now(), t0.Add(time.Second))
	}
}

func TestSchedulerDisarmAndRearm(t *testing.T) {
	s := NewScheduler(t0)
	runs := 0
	s.Every("tick", 100*time.Millisecond, func(time.Time) { runs++ })

	s.Advance(time.Second)
	if runs != 0 {
		t.Fatalf("unarmed task ran %d times", runs)
	}

	s.Arm("tick")
	s.Advance(350 * time.Millisecond)
	if runs != 3 {
		t.Errorf("runs = %d after 350ms, want 3", runs)
	}

	s.Disarm("tick")
	if s.Armed("tick") {
		t.Error("task still armed after Disarm")
	}
	s.Advance(time.Second)
	if runs != 3 {
		t.Errorf("disarmed task ran; runs = %d", runs)
	}

	// Re-arming starts a fresh period from the current time
	s.Arm("tick")
	s.Advance(99 * time.Millisecond)
	if runs != 3 {
		t.Errorf("re-armed task ran early; runs = %d", runs)
	}
	s.Advance(time.Millisecond)
	if runs != 4 {
		t.Errorf("runs = %d after one full period, want 4", runs)
	}
}

func TestSchedulerTaskCanDisarmOthers(t *testing.T) {
	s := NewScheduler(t0)
	var order []string
	s.Every("first", time.Second, func(time.Time) {
		order = append(order, "first")
		s.Disarm("second")
	})
	s.Every("second", time.Second, func(time.Time) {
		order = append(order, "second")
	})
	s.Arm("first", "second")

	s.Advance(3 * time.Second)

	// second shares first's due time but is disarmed before its turn
	for _, name := range order {
		if name == "second" {
			t.Fatalf("disarmed task ran: %v", order)
		}
	}
	if len(order) != 3 {
		t.Errorf("first ran %d times, want 3", len(order))
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	s := NewScheduler(time.Now())
	ticks := make(chan struct{}, 100)
	s.Every("tick", time.Millisecond, func(time.Time) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	s.Arm("tick")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran under Run")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
