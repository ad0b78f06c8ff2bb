package server

import (
	"time"

	"github.com/lab1702/duel-arena/game"
)

// botAimPoint picks the point the bot shoots at: the player's position,
// led along the player's velocity when prediction triggers, plus noise
// that shrinks with accuracy.
func (s *Session) botAimPoint() AimPoint {
	aim := AimPoint{X: s.player.X, Y: s.player.Y}

	if game.Chance(s.rng, s.profile.BotPredictionChance) {
		frames := game.TravelTime(s.bot.DistanceTo(s.player))
		aim.X += s.player.VX * frames * PredictionLeadScale
		aim.Y += s.player.VY * frames * PredictionLeadScale
		aim.Predicted = true
	}

	span := s.profile.AimNoise()
	aim.X += aimNoise(s.rng, span)
	aim.Y += aimNoise(s.rng, span)
	return aim
}

// botFire shoots at the aim point if the bot's weapon is ready
func (s *Session) botFire(now time.Time) bool {
	s.bot.RefreshTimers(now)
	if !s.bot.CanFire(now) {
		return false
	}
	aim := s.botAimPoint()
	angle := s.bot.AngleTo(aim.X, aim.Y)
	if !s.fireProjectile(s.bot, angle, now) {
		return false
	}
	s.bot.AimAngle = angle
	return true
}
