package game

import (
	"math"
	"time"
)

// Combatant is one of the two fighters in a round
type Combatant struct {
	Side Side `json:"side"`

	// Position and movement
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Radius   float64 `json:"radius"`
	Speed    float64 `json:"-"` // Base movement speed
	AimAngle float64 `json:"aimAngle"`

	// Status
	Health    int  `json:"health"`
	MaxHealth int  `json:"maxHealth"`
	Ammo      int  `json:"ammo"`
	MaxAmmo   int  `json:"maxAmmo"`
	Reloading bool `json:"reloading"`

	// Weapon timing
	FireCooldown  time.Duration `json:"-"`
	ReloadDelay   time.Duration `json:"-"`
	CooldownUntil time.Time     `json:"-"`
	ReloadUntil   time.Time     `json:"-"`
}

// NewCombatant creates a combatant for a side at its spawn configuration
func NewCombatant(side Side) *Combatant {
	c := &Combatant{
		Side:         side,
		Radius:       CombatantRadius,
		MaxHealth:    MaxHealth,
		MaxAmmo:      MaxAmmo,
		Speed:        PlayerSpeed,
		FireCooldown: PlayerFireCooldown,
		ReloadDelay:  ReloadDelay,
	}
	c.Reset()
	return c
}

// SpawnPoint returns where a side (re)spawns
func SpawnPoint(side Side) (x, y float64) {
	if side == SideBot {
		return ArenaWidth / 2, 150
	}
	return ArenaWidth / 2, ArenaHeight - 150
}

// Reset restores the full round-start configuration including weapon timers
func (c *Combatant) Reset() {
	c.Respawn()
	c.CooldownUntil = time.Time{}
	c.ReloadUntil = time.Time{}
	if c.Side == SideBot {
		c.AimAngle = math.Pi / 2
	} else {
		c.AimAngle = -math.Pi / 2
	}
}

// Respawn puts the combatant back at its spawn point with full health and ammo.
// The fire cooldown is left alone.
func (c *Combatant) Respawn() {
	c.X, c.Y = SpawnPoint(c.Side)
	c.VX, c.VY = 0, 0
	c.Health = c.MaxHealth
	c.Ammo = c.MaxAmmo
	c.Reloading = false
	c.ReloadUntil = time.Time{}
}

// Bounds returns the allowed region for the combatant's center
func (c *Combatant) Bounds() (minX, minY, maxX, maxY float64) {
	minX = c.Radius + WallMargin
	minY = c.Radius + WallMargin
	maxX = ArenaWidth - c.Radius - WallMargin
	if c.Side == SideBot {
		maxY = ArenaHeight/2 - BotCeilingOffset
	} else {
		maxY = ArenaHeight - c.Radius - WallMargin
	}
	return
}

// ClampPosition keeps the combatant inside its region
func (c *Combatant) ClampPosition() {
	minX, minY, maxX, maxY := c.Bounds()
	c.X = Clamp(c.X, minX, maxX)
	c.Y = Clamp(c.Y, minY, maxY)
}

// Move integrates position by velocity once and clamps
func (c *Combatant) Move() {
	c.X += c.VX
	c.Y += c.VY
	c.ClampPosition()
}

// RefreshTimers completes a pending reload once its delay has elapsed
func (c *Combatant) RefreshTimers(now time.Time) {
	if c.Reloading && !now.Before(c.ReloadUntil) {
		c.Ammo = c.MaxAmmo
		c.Reloading = false
		c.ReloadUntil = time.Time{}
	}
}

// OnCooldown reports whether the post-shot cooldown is still running
func (c *Combatant) OnCooldown(now time.Time) bool {
	return now.Before(c.CooldownUntil)
}

// CanFire reports whether a shot is allowed right now
func (c *Combatant) CanFire(now time.Time) bool {
	return !c.Reloading && c.Ammo > 0 && !c.OnCooldown(now)
}

// ConsumeShot spends one round of ammo and starts the cooldown and, if the
// magazine is empty, the reload.
func (c *Combatant) ConsumeShot(now time.Time) {
	c.Ammo--
	if c.Ammo < 0 {
		c.Ammo = 0
	}
	c.CooldownUntil = now.Add(c.FireCooldown)
	if c.Ammo == 0 {
		c.Reloading = true
		c.ReloadUntil = now.Add(c.ReloadDelay)
	}
}

// Dead reports whether health is exhausted
func (c *Combatant) Dead() bool {
	return c.Health <= 0
}

// SetVelocityPolar sets velocity from a direction and magnitude
func (c *Combatant) SetVelocityPolar(angle, speed float64) {
	c.VX = math.Cos(angle) * speed
	c.VY = math.Sin(angle) * speed
}

// DistanceTo returns the center distance to another combatant
func (c *Combatant) DistanceTo(o *Combatant) float64 {
	return Distance(c.X, c.Y, o.X, o.Y)
}

// AngleTo returns the direction from this combatant toward a point
func (c *Combatant) AngleTo(x, y float64) float64 {
	return math.Atan2(y-c.Y, x-c.X)
}
