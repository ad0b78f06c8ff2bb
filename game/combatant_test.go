package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCombatantSpawn(t *testing.T) {
	player := NewCombatant(SidePlayer)
	assert.Equal(t, 500.0, player.X)
	assert.Equal(t, 500.0, player.Y)
	assert.Equal(t, -math.Pi/2, player.AimAngle)
	assert.Equal(t, MaxHealth, player.Health)
	assert.Equal(t, MaxAmmo, player.Ammo)

	bot := NewCombatant(SideBot)
	assert.Equal(t, 500.0, bot.X)
	assert.Equal(t, 150.0, bot.Y)
	assert.Equal(t, math.Pi/2, bot.AimAngle)
}

func TestClampPosition(t *testing.T) {
	tests := []struct {
		name         string
		side         Side
		x, y         float64
		wantX, wantY float64
	}{
		{"player top-left", SidePlayer, -100, -100, 42, 42},
		{"player bottom-right", SidePlayer, 5000, 5000, ArenaWidth - 42, ArenaHeight - 42},
		{"bot held in upper half", SideBot, 500, 600, 500, ArenaHeight/2 - 50},
		{"bot top wall", SideBot, 500, 0, 500, 42},
		{"inside untouched", SidePlayer, 300, 300, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCombatant(tt.side)
			c.X, c.Y = tt.x, tt.y
			c.ClampPosition()
			assert.Equal(t, tt.wantX, c.X)
			assert.Equal(t, tt.wantY, c.Y)
		})
	}
}

func TestConsumeShotCooldownAndReload(t *testing.T) {
	c := NewCombatant(SidePlayer)
	assert.True(t, c.CanFire(t0))

	c.ConsumeShot(t0)
	assert.Equal(t, 2, c.Ammo)
	assert.True(t, c.OnCooldown(t0.Add(349*time.Millisecond)))
	assert.False(t, c.CanFire(t0.Add(349*time.Millisecond)))
	assert.True(t, c.CanFire(t0.Add(350*time.Millisecond)))

	now := t0.Add(time.Second)
	c.ConsumeShot(now)
	now = now.Add(time.Second)
	c.ConsumeShot(now)
	assert.Equal(t, 0, c.Ammo)
	assert.True(t, c.Reloading)
	assert.False(t, c.CanFire(now.Add(time.Second)))

	c.RefreshTimers(now.Add(1499 * time.Millisecond))
	assert.True(t, c.Reloading)
	assert.Equal(t, 0, c.Ammo)

	c.RefreshTimers(now.Add(ReloadDelay))
	assert.False(t, c.Reloading)
	assert.Equal(t, MaxAmmo, c.Ammo)
}

func TestRespawnKeepsCooldownResetClearsIt(t *testing.T) {
	c := NewCombatant(SideBot)
	c.FireCooldown = time.Second
	c.ConsumeShot(t0)
	c.X, c.VX, c.Health = 10, 3, -100

	c.Respawn()
	assert.Equal(t, MaxHealth, c.Health)
	assert.Equal(t, 0.0, c.VX)
	assert.Equal(t, 500.0, c.X)
	assert.True(t, c.OnCooldown(t0))

	c.Reset()
	assert.False(t, c.OnCooldown(t0))
}

func TestApplyDamage(t *testing.T) {
	c := NewCombatant(SideBot)
	for i := 0; i < 9; i++ {
		assert.Equal(t, ProjectileDamage, ApplyDamage(c, ProjectileDamage))
	}
	assert.False(t, c.Dead())
	ApplyDamage(c, ProjectileDamage)
	assert.True(t, c.Dead())
	assert.Equal(t, 0, c.Health)

	assert.Equal(t, 0, ApplyDamage(nil, 100))
	assert.Equal(t, 0, ApplyDamage(c, -5))
}

func TestAccuracy(t *testing.T) {
	r := &RoundState{}
	assert.Equal(t, 0, r.Accuracy())

	r.TotalShots, r.TotalHits = 10, 5
	assert.Equal(t, 50, r.Accuracy())

	r.TotalShots, r.TotalHits = 3, 2
	assert.Equal(t, 67, r.Accuracy())

	r.TotalShots, r.TotalHits = 8, 1 // 12.5 rounds up
	assert.Equal(t, 13, r.Accuracy())
}
