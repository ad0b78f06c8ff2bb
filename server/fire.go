package server

import (
	"time"

	"github.com/lab1702/duel-arena/game"
)

// fireProjectile launches a shot from shooter along angle if its weapon is
// ready. Returns false without side effects when it is not.
func (s *Session) fireProjectile(shooter *game.Combatant, angle float64, now time.Time) bool {
	if !s.round.Active() {
		return false
	}
	shooter.RefreshTimers(now)
	if !shooter.CanFire(now) {
		return false
	}

	shot := game.NewProjectile(shooter, angle)
	shot.ID = s.nextShotID
	s.nextShotID++
	s.projectiles = append(s.projectiles, shot)

	shooter.ConsumeShot(now)
	s.metrics.shot(shooter.Side)
	return true
}

// playerFire fires along the player's aim with a little spread
func (s *Session) playerFire(now time.Time) {
	s.player.RefreshTimers(now)
	if !s.round.Active() || !s.player.CanFire(now) {
		s.roundLog.Debug().Msg("Fire ignored")
		return
	}
	angle := s.player.AimAngle + shotSpread(s.rng)
	if s.fireProjectile(s.player, angle, now) {
		s.round.TotalShots++
	}
}

// autoFireTick polls the held fire control
func (s *Session) autoFireTick(now time.Time) {
	s.mu.Lock()
	defer s.unlock()
	if s.fireHeld {
		s.playerFire(now)
	}
}
