package server

import (
	"time"

	"github.com/lab1702/duel-arena/game"
)

// physicsTick runs one simulation frame and publishes it
func (s *Session) physicsTick(now time.Time) {
	s.mu.Lock()
	if !s.round.Active() {
		s.unlock()
		return
	}
	s.step(now)
	s.frame++
	frame := s.frame
	l := s.listener

	// Frame output goes first so the final positions precede the round result
	ended := s.ended
	s.ended = nil
	s.mu.Unlock()

	if l == nil {
		return
	}
	l.OnFrame(frame)
	for _, sum := range ended {
		l.OnRoundEnd(sum)
	}
}

// step advances the arena by one frame: timers, movement, projectiles
func (s *Session) step(now time.Time) {
	s.player.RefreshTimers(now)
	s.bot.RefreshTimers(now)

	s.updateCombatantPhysics(s.player)
	s.updateCombatantPhysics(s.bot)

	// The bot always faces the player between shots
	s.bot.AimAngle = s.bot.AngleTo(s.player.X, s.player.Y)

	s.updateProjectiles(now)
}

// updateCombatantPhysics moves one combatant and applies its damping
func (s *Session) updateCombatantPhysics(c *game.Combatant) {
	c.Move()
	if c.Side == game.SideBot {
		c.VX *= game.BotDamping
		c.VY *= game.BotDamping
	}
	s.space.Sync(c)
}

// respawn restores a killed combatant at its spawn point
func (s *Session) respawn(c *game.Combatant) {
	c.Respawn()
	if c.Side == game.SideBot {
		c.AimAngle = c.AngleTo(s.player.X, s.player.Y)
	}
	s.space.Sync(c)
}

// combatant returns the fighter for a side
func (s *Session) combatant(side game.Side) *game.Combatant {
	if side == game.SideBot {
		return s.bot
	}
	return s.player
}
