package server

import (
	"github.com/lab1702/duel-arena/game"
	"github.com/solarlune/resolv"
)

// collisionCellSize is the resolv cell edge in world units; it divides both
// arena dimensions so the space covers the whole arena
const collisionCellSize = 25

// probeMargin widens the projectile box so boxes that overlap by less than
// a unit still share a cell
const probeMargin = 1

// Resolv tags for the two bodies and the projectile probe
const (
	tagPlayer = "player"
	tagBot    = "bot"
	tagShot   = "shot"
)

func sideTag(side game.Side) string {
	if side == game.SideBot {
		return tagBot
	}
	return tagPlayer
}

// CollisionSpace indexes both combatants in a resolv space so projectile
// hit checks only run the exact circle test against bodies sharing a cell.
type CollisionSpace struct {
	space  *resolv.Space
	bodies map[game.Side]*resolv.Object
	probe  *resolv.Object
}

// NewCollisionSpace builds a space covering the arena
func NewCollisionSpace() *CollisionSpace {
	cs := &CollisionSpace{
		space:  resolv.NewSpace(game.ArenaWidth, game.ArenaHeight, collisionCellSize, collisionCellSize),
		bodies: make(map[game.Side]*resolv.Object, 2),
	}
	for _, side := range []game.Side{game.SidePlayer, game.SideBot} {
		size := 2.0 * game.CombatantRadius
		obj := resolv.NewObject(0, 0, size, size, sideTag(side))
		obj.Data = side
		cs.space.Add(obj)
		cs.bodies[side] = obj
	}
	size := 2.0 * game.ProjectileRadius
	cs.probe = resolv.NewObject(0, 0, size, size, tagShot)
	cs.space.Add(cs.probe)
	return cs
}

// Sync moves a combatant's bounding box to its current position
func (cs *CollisionSpace) Sync(c *game.Combatant) {
	obj := cs.bodies[c.Side]
	obj.X = c.X - c.Radius
	obj.Y = c.Y - c.Radius
	obj.W = 2 * c.Radius
	obj.H = 2 * c.Radius
	obj.Update()
}

// Near reports whether the projectile's box shares a cell with the target's box
func (cs *CollisionSpace) Near(p *game.Projectile, target game.Side) bool {
	cs.probe.X = p.X - p.Radius - probeMargin
	cs.probe.Y = p.Y - p.Radius - probeMargin
	cs.probe.W = 2 * (p.Radius + probeMargin)
	cs.probe.H = 2 * (p.Radius + probeMargin)
	cs.probe.Update()

	check := cs.probe.Check(0, 0, sideTag(target))
	if check == nil {
		return false
	}
	for _, obj := range check.ObjectsByTags(sideTag(target)) {
		if obj == cs.bodies[target] {
			return true
		}
	}
	return false
}

// Hit runs the broadphase and then the exact circle test
func (cs *CollisionSpace) Hit(p *game.Projectile, target *game.Combatant) bool {
	if !cs.Near(p, target.Side) {
		return false
	}
	return p.Hits(target)
}
