package game

import (
	"math"
	"testing"
)

func TestNewProjectileMuzzleOffset(t *testing.T) {
	tests := []struct {
		name  string
		side  Side
		angle float64
		wantX float64
		wantY float64
	}{
		{name: "player up", side: SidePlayer, angle: -math.Pi / 2, wantX: 500, wantY: 500 - 30},
		{name: "player right", side: SidePlayer, angle: 0, wantX: 530, wantY: 500},
		{name: "bot down", side: SideBot, angle: math.Pi / 2, wantX: 500, wantY: 150 + 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shooter := NewCombatant(tt.side)
			p := NewProjectile(shooter, tt.angle)

			if math.Abs(p.X-tt.wantX) > 1e-9 || math.Abs(p.Y-tt.wantY) > 1e-9 {
				t.Errorf("spawn = (%.3f, %.3f), expected (%.3f, %.3f)", p.X, p.Y, tt.wantX, tt.wantY)
			}
			if got := math.Hypot(p.VX, p.VY); math.Abs(got-ProjectileSpeed) > 1e-9 {
				t.Errorf("speed = %.3f, expected %d", got, ProjectileSpeed)
			}
			if p.Owner != tt.side {
				t.Errorf("owner = %v, expected %v", p.Owner, tt.side)
			}
			if p.Damage != ProjectileDamage || p.Radius != ProjectileRadius {
				t.Errorf("damage/radius = %d/%.0f, expected %d/%d", p.Damage, p.Radius, ProjectileDamage, ProjectileRadius)
			}
		})
	}
}

func TestProjectileInBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 500, 325, true},
		{"just past left wall", -49, 10, true},
		{"on left margin", -50, 10, false},
		{"past right margin", ArenaWidth + 51, 10, false},
		{"below bottom margin", 10, ArenaHeight + 50, false},
		{"inside top margin", 10, -10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Projectile{X: tt.x, Y: tt.y}
			if got := p.InBounds(); got != tt.want {
				t.Errorf("InBounds(%.0f, %.0f) = %v, expected %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestProjectileHitsUsesStrictRadiusSum(t *testing.T) {
	target := NewCombatant(SideBot)
	reach := target.Radius + ProjectileRadius

	touching := &Projectile{X: target.X + reach, Y: target.Y, Radius: ProjectileRadius}
	if touching.Hits(target) {
		t.Error("projectile exactly at the radius sum should not count as a hit")
	}

	inside := &Projectile{X: target.X + reach - 0.01, Y: target.Y, Radius: ProjectileRadius}
	if !inside.Hits(target) {
		t.Error("projectile inside the radius sum should hit")
	}
}
