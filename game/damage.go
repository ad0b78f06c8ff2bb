package game

// ApplyDamage subtracts damage from the combatant's health.
// Returns the amount of damage dealt, which is the full shot damage even
// when it overkills the remaining health.
func ApplyDamage(c *Combatant, damage int) int {
	if c == nil || damage <= 0 {
		return 0
	}
	c.Health -= damage
	return damage
}
