package server

import (
	"testing"

	"github.com/lab1702/duel-arena/game"
	"github.com/stretchr/testify/assert"
)

func TestCollisionSpaceHit(t *testing.T) {
	cs := NewCollisionSpace()
	bot := game.NewCombatant(game.SideBot)
	player := game.NewCombatant(game.SidePlayer)
	cs.Sync(bot)
	cs.Sync(player)

	shotAt := func(x, y float64) *game.Projectile {
		return &game.Projectile{Owner: game.SidePlayer, X: x, Y: y, Radius: game.ProjectileRadius}
	}

	tests := []struct {
		name string
		shot *game.Projectile
		want bool
	}{
		{"Center", shotAt(bot.X, bot.Y), true},
		{"JustInside", shotAt(bot.X+28.9, bot.Y), true},
		{"TouchingIsNotAHit", shotAt(bot.X+29, bot.Y), false},
		{"Diagonal", shotAt(bot.X+20, bot.Y+20), true},
		{"Far", shotAt(800, 500), false},
		{"OutsideArena", shotAt(-45, -45), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cs.Hit(tt.shot, bot))
		})
	}
}

func TestCollisionSpaceFollowsSync(t *testing.T) {
	cs := NewCollisionSpace()
	bot := game.NewCombatant(game.SideBot)
	cs.Sync(bot)

	shot := &game.Projectile{Owner: game.SidePlayer, X: 200, Y: 200, Radius: game.ProjectileRadius}
	assert.False(t, cs.Near(shot, game.SideBot))

	bot.X, bot.Y = 210, 200
	assert.False(t, cs.Near(shot, game.SideBot), "stale box until synced")

	cs.Sync(bot)
	assert.True(t, cs.Near(shot, game.SideBot))
	assert.True(t, cs.Hit(shot, bot))
}

func TestCollisionSpaceTargetsOneSide(t *testing.T) {
	cs := NewCollisionSpace()
	player := game.NewCombatant(game.SidePlayer)
	bot := game.NewCombatant(game.SideBot)
	cs.Sync(player)
	cs.Sync(bot)

	shot := &game.Projectile{Owner: game.SideBot, X: player.X, Y: player.Y, Radius: game.ProjectileRadius}
	assert.True(t, cs.Near(shot, game.SidePlayer))
	assert.False(t, cs.Near(shot, game.SideBot))
}
