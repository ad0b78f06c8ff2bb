package server

import (
	"time"

	"github.com/lab1702/duel-arena/game"
)

// Summary is the final result block of a round
type Summary struct {
	RoundID     string         `json:"roundId"`
	Tier        game.Tier      `json:"tier"`
	Outcome     game.Outcome   `json:"outcome,omitempty"`
	Reason      game.EndReason `json:"reason"`
	PlayerKills int            `json:"playerKills"`
	BotKills    int            `json:"botKills"`
	TotalShots  int            `json:"totalShots"`
	TotalHits   int            `json:"totalHits"`
	TotalDamage int            `json:"totalDamage"`
	Accuracy    int            `json:"accuracy"`
	DurationMs  int64          `json:"durationMs"`

	// TieLoss marks a time-expiry round that was lost on equal kills
	TieLoss bool `json:"tieLoss,omitempty"`
}

func summarize(r *game.RoundState) Summary {
	return Summary{
		RoundID:     r.ID,
		Tier:        r.Tier,
		Outcome:     r.Outcome,
		Reason:      r.EndReason,
		PlayerKills: r.PlayerKills,
		BotKills:    r.BotKills,
		TotalShots:  r.TotalShots,
		TotalHits:   r.TotalHits,
		TotalDamage: r.TotalDamage,
		Accuracy:    r.Accuracy(),
		DurationMs:  r.EndedAt.Sub(r.StartedAt).Milliseconds(),
		TieLoss:     r.EndReason == game.EndTime && r.PlayerKills == r.BotKills,
	}
}

// Summary returns the result block of the current or most recent round
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := summarize(&s.round)
	if s.round.Active() {
		sum.DurationMs = s.sched.Now().Sub(s.round.StartedAt).Milliseconds()
	}
	return sum
}

// killOutcome is the decisive result when side reaches the kill target
func killOutcome(side game.Side) game.Outcome {
	if side == game.SidePlayer {
		return game.OutcomeWin
	}
	return game.OutcomeLose
}

// timeOutcome decides a round that ran out of time. Only a strict kill lead
// wins; equal kills count as a loss.
func timeOutcome(playerKills, botKills int) game.Outcome {
	if playerKills > botKills {
		return game.OutcomeWin
	}
	return game.OutcomeLose
}

// checkKillTarget ends the round once side has reached the target
func (s *Session) checkKillTarget(side game.Side, now time.Time) {
	if s.round.Kills(side) >= s.round.TargetKills {
		s.endRound(killOutcome(side), game.EndKills, now)
	}
}

// endRound finalizes the round exactly once and stops its schedules
func (s *Session) endRound(outcome game.Outcome, reason game.EndReason, now time.Time) {
	if !s.round.Active() {
		return
	}
	s.round.Phase = game.PhaseEnded
	s.round.Outcome = outcome
	s.round.EndReason = reason
	s.round.EndedAt = now
	s.fireHeld = false

	s.sched.Disarm(TaskPhysics, TaskCountdown, TaskBot, TaskAutoFire)

	sum := summarize(&s.round)
	s.ended = append(s.ended, sum)
	s.metrics.roundEnded(outcome, reason)

	ev := s.roundLog.Info().
		Str("outcome", string(outcome)).
		Str("reason", string(reason)).
		Int("playerKills", sum.PlayerKills).
		Int("botKills", sum.BotKills).
		Int("accuracy", sum.Accuracy)
	if sum.TieLoss {
		ev = ev.Bool("tieLoss", true)
	}
	ev.Msg("Round ended")
}
