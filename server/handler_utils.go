package server

import "fmt"

// Handler data structures

// StartData represents a round start request
type StartData struct {
	Difficulty string `json:"difficulty"`
}

// AimData represents an aim update, either an angle or a world point
type AimData struct {
	Angle *float64 `json:"angle,omitempty"` // Radians
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

// MoveData represents a movement vector in world units per frame
type MoveData struct {
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// FireHoldData represents the fire control being pressed or released
type FireHoldData struct {
	Held bool `json:"held"`
}

// ErrorData is sent back for rejected requests
type ErrorData struct {
	Message string `json:"message"`
}

// errMalformed reports a request whose data could not be decoded
func errMalformed(kind string) error {
	return fmt.Errorf("malformed %s request", kind)
}
