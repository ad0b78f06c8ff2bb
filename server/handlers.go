package server

import (
	"encoding/json"

	"github.com/lab1702/duel-arena/game"
)

// handleMessage processes a message from the client
func (c *Client) handleMessage(msg ClientMessage) {
	// Recover from any panic to prevent disconnection
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("type", msg.Type).Interface("panic", r).Msg("PANIC in handleMessage")
		}
	}()

	switch msg.Type {
	case MsgTypeStart:
		c.handleStart(msg.Data)
	case MsgTypeAim:
		c.handleAim(msg.Data)
	case MsgTypeMove:
		c.handleMove(msg.Data)
	case MsgTypeFire:
		c.session.RequestFire()
	case MsgTypeFireHold:
		c.handleFireHold(msg.Data)
	case MsgTypeMenu:
		c.session.ReturnToMenu()
		c.sendSnapshot()
	default:
		c.log.Debug().Str("type", msg.Type).Msg("Unknown message type")
	}
}

// decode unmarshals message data, logging malformed payloads
func (c *Client) decode(kind string, data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		c.log.Debug().Err(err).Str("type", kind).Msg("Error unmarshaling message data")
		return false
	}
	return true
}

// handleStart begins a round at the requested difficulty
func (c *Client) handleStart(data json.RawMessage) {
	var start StartData
	if !c.decode(MsgTypeStart, data, &start) {
		c.sendError(errMalformed(MsgTypeStart))
		return
	}

	tier, err := game.ParseTier(start.Difficulty)
	if err != nil {
		c.sendError(err)
		return
	}
	if err := c.session.StartRound(tier); err != nil {
		c.sendError(err)
		return
	}
	c.sendSnapshot()
}

// handleAim points the player's weapon by angle or at a world point
func (c *Client) handleAim(data json.RawMessage) {
	var aim AimData
	if !c.decode(MsgTypeAim, data, &aim) {
		return
	}
	switch {
	case aim.Angle != nil:
		c.session.SetAim(*aim.Angle)
	case aim.X != nil && aim.Y != nil:
		c.session.SetAimAt(*aim.X, *aim.Y)
	}
}

// handleMove sets the player's velocity
func (c *Client) handleMove(data json.RawMessage) {
	var move MoveData
	if !c.decode(MsgTypeMove, data, &move) {
		return
	}
	c.session.SetMoveVelocity(move.VX, move.VY)
}

// handleFireHold toggles auto-fire
func (c *Client) handleFireHold(data json.RawMessage) {
	var hold FireHoldData
	if !c.decode(MsgTypeFireHold, data, &hold) {
		return
	}
	c.session.SetFireHeld(hold.Held)
}
