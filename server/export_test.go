package server

import (
	"testing"
	"time"

	"github.com/lab1702/duel-arena/game"
	"github.com/rs/zerolog"
)

// Test helpers shared by the session, bot and transport tests

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// scriptedRand replays fixed draws, then repeats fallback
type scriptedRand struct {
	vals     []float64
	next     int
	fallback float64
}

func script(fallback float64, vals ...float64) *scriptedRand {
	return &scriptedRand{vals: vals, fallback: fallback}
}

func (r *scriptedRand) Float64() float64 {
	if r.next < len(r.vals) {
		v := r.vals[r.next]
		r.next++
		return v
	}
	return r.fallback
}

// used reports how many scripted draws were consumed
func (r *scriptedRand) used() int {
	return r.next
}

// recorder is a Listener that keeps everything it is told
type recorder struct {
	frames    []int64
	summaries []Summary
}

func (r *recorder) OnFrame(frame int64)     { r.frames = append(r.frames, frame) }
func (r *recorder) OnRoundEnd(sum Summary) { r.summaries = append(r.summaries, sum) }

// newTestSession creates a session on logical time starting at t0.
// A centered fallback draw keeps player shots on their aim line.
func newTestSession(t *testing.T, opts ...Option) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []Option{
		WithStart(t0),
		WithRand(script(0.5)),
		WithLogger(zerolog.Nop()),
		WithListener(rec),
	}
	return NewSession(append(base, opts...)...), rec
}

// startRound begins a round and fails the test on error
func startRound(t *testing.T, s *Session, tier game.Tier) {
	t.Helper()
	if err := s.StartRound(tier); err != nil {
		t.Fatalf("StartRound(%s) failed: %v", tier, err)
	}
}

// freeze stops every schedule so the test drives the session by hand.
// The logical clock still moves with Advance.
func freeze(s *Session, keep ...string) {
	all := []string{TaskPhysics, TaskCountdown, TaskBot, TaskAutoFire}
	for _, name := range all {
		kept := false
		for _, k := range keep {
			kept = kept || k == name
		}
		if !kept {
			s.sched.Disarm(name)
		}
	}
}

// placeShot puts a stationary projectile at x, y
func placeShot(s *Session, owner game.Side, x, y float64) *game.Projectile {
	p := &game.Projectile{
		ID:     1000 + len(s.projectiles),
		Owner:  owner,
		X:      x,
		Y:      y,
		Radius: game.ProjectileRadius,
		Damage: game.ProjectileDamage,
	}
	s.projectiles = append(s.projectiles, p)
	return p
}
