package server

import (
	"context"
	"sync"
	"time"
)

// Task names for the session schedules
const (
	TaskPhysics   = "physics"
	TaskCountdown = "countdown"
	TaskBot       = "bot"
	TaskAutoFire  = "autofire"
)

// scheduledTask is one periodic activity driven by the scheduler
type scheduledTask struct {
	name   string
	period time.Duration
	next   time.Time
	armed  bool
	fn     func(now time.Time)
}

// Scheduler owns a logical clock and dispatches periodic tasks from one loop.
// Tasks due at the same instant run in registration order.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*scheduledTask
}

// NewScheduler creates a scheduler whose logical clock starts at start
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the logical time
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Every registers a disarmed periodic task
func (s *Scheduler) Every(name string, period time.Duration, fn func(now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, &scheduledTask{name: name, period: period, fn: fn})
}

// Arm starts a task so it first fires one period from now
func (s *Scheduler) Arm(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		for _, name := range names {
			if t.name == name {
				t.armed = true
				t.next = s.now.Add(t.period)
			}
		}
	}
}

// Disarm stops a task; it will not fire again until re-armed
func (s *Scheduler) Disarm(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		for _, name := range names {
			if t.name == name {
				t.armed = false
			}
		}
	}
}

// Armed reports whether the named task is scheduled
func (s *Scheduler) Armed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.name == name {
			return t.armed
		}
	}
	return false
}

// nextDue picks the earliest armed task due at or before deadline
func (s *Scheduler) nextDue(deadline time.Time) *scheduledTask {
	var due *scheduledTask
	for _, t := range s.tasks {
		if !t.armed || t.next.After(deadline) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

// Advance moves logical time forward by d, running every task that comes due.
// The clock reads each task's due time while it runs.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	deadline := s.now.Add(d)
	s.mu.Unlock()
	s.AdvanceTo(deadline)
}

// AdvanceTo runs all tasks due up to deadline and leaves the clock there
func (s *Scheduler) AdvanceTo(deadline time.Time) {
	for {
		s.mu.Lock()
		t := s.nextDue(deadline)
		if t == nil {
			if deadline.After(s.now) {
				s.now = deadline
			}
			s.mu.Unlock()
			return
		}
		s.now = t.next
		t.next = t.next.Add(t.period)
		fn, at := t.fn, s.now
		s.mu.Unlock()

		// Run outside the lock so the task may arm or disarm others
		fn(at)
	}
}

// Run drives logical time from the wall clock until ctx is done
func (s *Scheduler) Run(ctx context.Context, resolution time.Duration) {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case wall := <-ticker.C:
			s.Advance(wall.Sub(last))
			last = wall
		}
	}
}
