package server

import (
	"time"

	"github.com/lab1702/duel-arena/game"
)

// updateProjectiles moves every shot, resolves hits against the opposing
// combatant and drops shots that hit or left the arena.
// Uses in-place filtering to avoid slice allocation every frame.
func (s *Session) updateProjectiles(now time.Time) {
	writeIdx := 0
	for i, shot := range s.projectiles {
		// A kill that ended the round freezes the remaining shots
		if !s.round.Active() {
			writeIdx += copy(s.projectiles[writeIdx:], s.projectiles[i:])
			break
		}

		shot.Advance()

		// Shots only ever test the other side, so nobody can hit themselves
		target := s.combatant(shot.Owner.Opponent())
		if s.space.Hit(shot, target) {
			s.handleProjectileHit(shot, target, now)
			continue
		}

		if !shot.InBounds() {
			continue
		}

		s.projectiles[writeIdx] = shot
		writeIdx++
	}
	clear(s.projectiles[writeIdx:])
	s.projectiles = s.projectiles[:writeIdx]
}

// handleProjectileHit applies a hit and resolves a kill
func (s *Session) handleProjectileHit(shot *game.Projectile, target *game.Combatant, now time.Time) {
	dealt := game.ApplyDamage(target, shot.Damage)
	s.metrics.hit(shot.Owner)

	// Only the player's shots feed the accuracy counters
	if shot.Owner == game.SidePlayer {
		s.round.TotalHits++
		s.round.TotalDamage += dealt
	}

	if !target.Dead() {
		return
	}

	if shot.Owner == game.SidePlayer {
		s.round.PlayerKills++
	} else {
		s.round.BotKills++
	}
	s.metrics.kill(shot.Owner)
	s.roundLog.Info().
		Str("killer", shot.Owner.String()).
		Int("playerKills", s.round.PlayerKills).
		Int("botKills", s.round.BotKills).
		Msg("Kill")

	s.respawn(target)
	s.checkKillTarget(shot.Owner, now)
}
