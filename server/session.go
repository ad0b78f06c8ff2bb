package server

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lab1702/duel-arena/game"
	"github.com/rs/zerolog"
)

// Rules are the round parameters shared by every tier
type Rules struct {
	TargetKills  int `json:"targetKills"`
	RoundSeconds int `json:"roundSeconds"`
}

// DefaultRules returns the stock round rules
func DefaultRules() Rules {
	return Rules{TargetKills: game.DefaultTargetKills, RoundSeconds: game.DefaultRoundSeconds}
}

// Validate checks the rules can produce a round that ends
func (r Rules) Validate() error {
	if r.TargetKills < 1 {
		return fmt.Errorf("target kills must be at least 1, got %d", r.TargetKills)
	}
	if r.RoundSeconds < 1 {
		return fmt.Errorf("round length must be at least 1 second, got %d", r.RoundSeconds)
	}
	return nil
}

// Listener receives session output. Calls happen outside the session lock.
type Listener interface {
	OnFrame(frame int64)
	OnRoundEnd(summary Summary)
}

// Session is one player-versus-bot arena. It owns both combatants, the
// projectiles in flight, the round counters and the scheduler driving them.
type Session struct {
	mu sync.Mutex

	id          string
	round       game.RoundState
	player      *game.Combatant
	bot         *game.Combatant
	projectiles []*game.Projectile
	nextShotID  int
	frame       int64
	fireHeld    bool

	profiles game.ProfileTable
	profile  game.DifficultyProfile
	rules    Rules

	rng      game.Rand
	sched    *Scheduler
	space    *CollisionSpace
	metrics  *Metrics
	listener Listener

	log      zerolog.Logger
	roundLog zerolog.Logger

	// Round summaries waiting to be delivered once the lock is released
	ended []Summary
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the random source
func WithRand(r game.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithProfiles replaces the difficulty table
func WithProfiles(t game.ProfileTable) Option {
	return func(s *Session) { s.profiles = t.Clone() }
}

// WithRules replaces the round rules
func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithLogger sets the parent logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics sets the metric instruments
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithListener sets the output listener
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithStart sets the logical clock's starting time
func WithStart(t time.Time) Option {
	return func(s *Session) { s.sched = NewScheduler(t) }
}

// NewSession creates an idle session
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		player:   game.NewCombatant(game.SidePlayer),
		bot:      game.NewCombatant(game.SideBot),
		profiles: game.DefaultProfiles.Clone(),
		rules:    DefaultRules(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = game.NewRand(0)
	}
	if s.sched == nil {
		s.sched = NewScheduler(time.Now())
	}
	s.space = NewCollisionSpace()
	s.space.Sync(s.player)
	s.space.Sync(s.bot)
	s.log = s.log.With().Str("session", s.id).Logger()
	s.roundLog = s.log
	s.round.Phase = game.PhaseIdle

	// Registration order breaks ties between tasks due at the same instant
	s.sched.Every(TaskPhysics, game.FrameDur, s.physicsTick)
	s.sched.Every(TaskCountdown, game.TimerDur, s.countdownTick)
	s.sched.Every(TaskBot, game.BotDur, s.botTick)
	s.sched.Every(TaskAutoFire, game.FireDur, s.autoFireTick)
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Now returns the session's logical time
func (s *Session) Now() time.Time {
	return s.sched.Now()
}

// SetListener replaces the output listener
func (s *Session) SetListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Advance moves logical time forward, running every due task
func (s *Session) Advance(d time.Duration) {
	s.sched.Advance(d)
}

// Run drives the session from the wall clock until ctx is cancelled
func (s *Session) Run(ctx context.Context) {
	s.sched.Run(ctx, game.FrameDur/2)
}

// unlock releases the session and delivers any round summaries queued while
// it was held.
func (s *Session) unlock() {
	ended := s.ended
	s.ended = nil
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return
	}
	for _, sum := range ended {
		l.OnRoundEnd(sum)
	}
}

// StartRound resets every piece of round state and begins a round at tier.
// A round already in progress is abandoned first.
func (s *Session) StartRound(tier game.Tier) error {
	profile, err := s.profiles.Lookup(tier)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	s.mu.Lock()
	defer s.unlock()

	now := s.sched.Now()
	if s.round.Active() {
		s.endRound(game.OutcomeNone, game.EndAbandoned, now)
	}

	s.round = game.RoundState{
		ID:          uuid.NewString(),
		Phase:       game.PhaseActive,
		Tier:        tier,
		TargetKills: s.rules.TargetKills,
		TimeLeft:    s.rules.RoundSeconds,
		StartedAt:   now,
	}
	s.profile = profile

	s.player.Reset()
	s.bot.Speed = profile.BotSpeed
	s.bot.FireCooldown = profile.BotFireInterval
	s.bot.Reset()
	s.space.Sync(s.player)
	s.space.Sync(s.bot)
	clear(s.projectiles)
	s.projectiles = s.projectiles[:0]
	s.nextShotID = 0
	s.frame = 0

	s.roundLog = s.log.With().Str("round", s.round.ID).Logger()
	s.sched.Arm(TaskPhysics, TaskCountdown, TaskBot, TaskAutoFire)
	s.metrics.roundStarted(tier)
	s.roundLog.Info().Str("tier", string(tier)).Msg("Round started")
	return nil
}

// ReturnToMenu moves the session back to idle. An active round is abandoned.
func (s *Session) ReturnToMenu() {
	s.mu.Lock()
	defer s.unlock()

	if s.round.Active() {
		s.endRound(game.OutcomeNone, game.EndAbandoned, s.sched.Now())
	}
	s.round.Phase = game.PhaseIdle
	s.fireHeld = false
}

// Close stops the schedules and abandons any active round
func (s *Session) Close() {
	s.ReturnToMenu()
	s.sched.Disarm(TaskPhysics, TaskCountdown, TaskBot, TaskAutoFire)
}

// SetAim points the player's weapon along angle
func (s *Session) SetAim(angle float64) {
	if !game.Finite(angle) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.AimAngle = game.NormalizeAngleSigned(angle)
}

// SetAimAt points the player's weapon at a world position
func (s *Session) SetAimAt(x, y float64) {
	if !game.Finite(x, y) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.AimAngle = s.player.AngleTo(x, y)
}

// SetMoveVelocity sets the player's velocity. The magnitude is capped at the
// player's speed.
func (s *Session) SetMoveVelocity(vx, vy float64) {
	if !game.Finite(vx, vy) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if mag := math.Hypot(vx, vy); mag > s.player.Speed {
		vx = vx / mag * s.player.Speed
		vy = vy / mag * s.player.Speed
	}
	s.player.VX, s.player.VY = vx, vy
}

// RequestFire fires one player shot if the weapon is ready
func (s *Session) RequestFire() {
	s.mu.Lock()
	defer s.unlock()
	s.playerFire(s.sched.Now())
}

// SetFireHeld turns auto-fire on or off
func (s *Session) SetFireHeld(held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fireHeld = held
}

// Phase returns the round phase
func (s *Session) Phase() game.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Phase
}

// ProjectileView is a projectile as presented to clients
type ProjectileView struct {
	ID     int       `json:"id"`
	Owner  game.Side `json:"owner"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	VX     float64   `json:"vx"`
	VY     float64   `json:"vy"`
	Radius float64   `json:"radius"`
	Color  string    `json:"color"`
}

// Snapshot is a read-only copy of the session for output collaborators
type Snapshot struct {
	SessionID   string           `json:"sessionId"`
	Frame       int64            `json:"frame"`
	Round       game.RoundState  `json:"round"`
	Accuracy    int              `json:"accuracy"`
	Player      game.Combatant   `json:"player"`
	Bot         game.Combatant   `json:"bot"`
	Projectiles []ProjectileView `json:"projectiles"`
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]ProjectileView, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		views = append(views, ProjectileView{
			ID:     p.ID,
			Owner:  p.Owner,
			X:      p.X,
			Y:      p.Y,
			VX:     p.VX,
			VY:     p.VY,
			Radius: p.Radius,
			Color:  p.Owner.Color(),
		})
	}
	return Snapshot{
		SessionID:   s.id,
		Frame:       s.frame,
		Round:       s.round,
		Accuracy:    s.round.Accuracy(),
		Player:      *s.player,
		Bot:         *s.bot,
		Projectiles: views,
	}
}
