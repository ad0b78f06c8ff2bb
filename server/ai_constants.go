package server

// AI Constants for Bot Behavior
// These constants control bot movement choices on each decision tick.
// The per-tier numbers (speed, fire interval, accuracy, dodge and prediction
// chances) live in game.DifficultyProfile.

const (
	// Dodge
	DodgeDetectRange = 150.0 // Player shots closer than this are dodge candidates
	DodgeSpeedMult   = 2.0   // Dodge velocity as a multiple of bot speed

	// Wander
	WanderChance = 0.15 // Per-tick chance to pick a new random heading when not dodging

	// Retreat
	RetreatRange  = 200.0 // Player closer than this may trigger a retreat
	RetreatChance = 0.3   // Per-tick chance to retreat when the player is close

	// Aim prediction
	// The lead is player velocity * frames of travel * PredictionLeadScale.
	// The scale over-leads on purpose; velocity is in units per frame and
	// the travel time is in frames.
	PredictionLeadScale = 8.0
)
