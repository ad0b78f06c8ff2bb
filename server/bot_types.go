package server

// BotManeuver names the movement decision taken on a bot tick
type BotManeuver string

// Bot maneuvers returned by botDecide
const (
	ManeuverHold    BotManeuver = "hold"
	ManeuverDodge   BotManeuver = "dodge"
	ManeuverWander  BotManeuver = "wander"
	ManeuverRetreat BotManeuver = "retreat"
)

// BotDecision records what one bot tick did
type BotDecision struct {
	Fired    bool
	Maneuver BotManeuver
	Threats  int // Player shots inside dodge range
}

// AimPoint is where the bot decided to shoot
type AimPoint struct {
	X, Y      float64
	Predicted bool
}
