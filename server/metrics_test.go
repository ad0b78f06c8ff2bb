package server

import (
	"testing"

	"github.com/lab1702/duel-arena/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsWithoutProvider(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.roundStarted(game.TierEasy)
		m.shot(game.SidePlayer)
		m.hit(game.SideBot)
		m.kill(game.SidePlayer)
		m.roundEnded(game.OutcomeWin, game.EndKills)
	})
	reg, err := registerActiveSessions(func() int { return 3 })
	require.NoError(t, err)
	assert.NoError(t, reg.Unregister())
}

func TestNilMetricsRecordsNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.roundStarted(game.TierHard)
		m.shot(game.SideBot)
		m.hit(game.SidePlayer)
		m.kill(game.SideBot)
		m.roundEnded(game.OutcomeLose, game.EndTime)
	})

	// Sessions without metrics still play full rounds
	s, rec := newTestSession(t)
	startRound(t, s, game.TierEasy)
	freeze(s, TaskPhysics)
	s.round.PlayerKills = game.DefaultTargetKills - 1
	s.bot.Health = 1
	placeShot(s, game.SidePlayer, s.bot.X, s.bot.Y)
	s.Advance(game.FrameDur)
	require.Len(t, rec.summaries, 1)
}
