package server

import "github.com/lab1702/duel-arena/game"

// shotSpread returns the random deviation added to a player shot's angle,
// uniform within ±PlayerSpread/2 radians
func shotSpread(r game.Rand) float64 {
	return game.Centered(r, game.PlayerSpread)
}

// aimNoise returns a positional offset for one axis of a bot aim point,
// uniform within ±span/2 world units
func aimNoise(r game.Rand, span float64) float64 {
	return game.Centered(r, span)
}
