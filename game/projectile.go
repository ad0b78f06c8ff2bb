package game

import "math"

// Projectile is a shot in flight
type Projectile struct {
	ID     int     `json:"id"`
	Owner  Side    `json:"owner"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Damage int     `json:"damage"`
}

// NewProjectile spawns a shot from the shooter's muzzle traveling along angle
func NewProjectile(owner *Combatant, angle float64) *Projectile {
	return &Projectile{
		Owner:  owner.Side,
		X:      owner.X + math.Cos(angle)*MuzzleDistance,
		Y:      owner.Y + math.Sin(angle)*MuzzleDistance,
		VX:     math.Cos(angle) * ProjectileSpeed,
		VY:     math.Sin(angle) * ProjectileSpeed,
		Radius: ProjectileRadius,
		Damage: ProjectileDamage,
	}
}

// Advance moves the projectile one frame
func (p *Projectile) Advance() {
	p.X += p.VX
	p.Y += p.VY
}

// Heading returns the travel direction in radians
func (p *Projectile) Heading() float64 {
	return math.Atan2(p.VY, p.VX)
}

// InBounds reports whether the projectile is still inside the arena plus the cull margin
func (p *Projectile) InBounds() bool {
	return p.X > -ProjectileBoundsMargin && p.X < ArenaWidth+ProjectileBoundsMargin &&
		p.Y > -ProjectileBoundsMargin && p.Y < ArenaHeight+ProjectileBoundsMargin
}

// Hits reports whether the projectile overlaps the combatant
func (p *Projectile) Hits(c *Combatant) bool {
	return Distance(p.X, p.Y, c.X, c.Y) < c.Radius+p.Radius
}

// TravelTime returns the number of frames a projectile needs to cover dist
func TravelTime(dist float64) float64 {
	return dist / ProjectileSpeed
}
