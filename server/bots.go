package server

import (
	"math"
	"time"

	"github.com/lab1702/duel-arena/game"
)

// botTick runs the bot's decision logic five times a second
func (s *Session) botTick(now time.Time) {
	s.mu.Lock()
	defer s.unlock()

	if !s.round.Active() {
		return
	}
	d := s.botDecide(now)
	if d.Fired || d.Maneuver != ManeuverHold {
		s.roundLog.Debug().
			Bool("fired", d.Fired).
			Str("maneuver", string(d.Maneuver)).
			Int("threats", d.Threats).
			Msg("Bot decision")
	}
}

// botDecide fires when ready, then picks a movement: dodge incoming shots,
// otherwise maybe wander, and retreat when the player is too close.
// Random draws happen in that order and only when a branch is reached.
func (s *Session) botDecide(now time.Time) BotDecision {
	d := BotDecision{Maneuver: ManeuverHold}
	bot := s.bot

	d.Fired = s.botFire(now)

	dodged := false
	for _, shot := range s.projectiles {
		if shot.Owner != game.SidePlayer {
			continue
		}
		if game.Distance(shot.X, shot.Y, bot.X, bot.Y) >= DodgeDetectRange {
			continue
		}
		d.Threats++
		if !game.Chance(s.rng, s.profile.BotDodgeChance) {
			continue
		}
		// Step sideways off the shot's line; the last shot considered wins
		side := -math.Pi / 2
		if s.rng.Float64() > 0.5 {
			side = math.Pi / 2
		}
		bot.SetVelocityPolar(shot.Heading()+side, bot.Speed*DodgeSpeedMult)
		dodged = true
	}
	if dodged {
		d.Maneuver = ManeuverDodge
	}

	if !dodged && game.Chance(s.rng, WanderChance) {
		bot.SetVelocityPolar(game.RandomAngle(s.rng), bot.Speed)
		d.Maneuver = ManeuverWander
	}

	if bot.DistanceTo(s.player) < RetreatRange && game.Chance(s.rng, RetreatChance) {
		away := math.Atan2(bot.Y-s.player.Y, bot.X-s.player.X)
		bot.SetVelocityPolar(away, bot.Speed)
		d.Maneuver = ManeuverRetreat
	}

	return d
}
