package server

import (
	"fmt"
	"time"

	"github.com/lab1702/duel-arena/game"
)

// countdownTick runs once per second while a round is active
func (s *Session) countdownTick(now time.Time) {
	s.mu.Lock()
	defer s.unlock()

	if !s.round.Active() {
		return
	}
	if s.round.TimeLeft > 0 {
		s.round.TimeLeft--
	}
	if s.round.TimeLeft <= 0 {
		s.endRound(timeOutcome(s.round.PlayerKills, s.round.BotKills), game.EndTime, now)
	}
}

// FormatClock renders seconds as m:ss
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
