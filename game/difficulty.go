package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownTier is returned when a difficulty tier name is not recognized
var ErrUnknownTier = errors.New("unknown difficulty tier")

// Tier names a difficulty level
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Tiers lists every difficulty tier in menu order
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// ParseTier converts a tier name to a Tier, case-insensitively
func ParseTier(name string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Tiers {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// DifficultyProfile holds the bot tuning for one tier
type DifficultyProfile struct {
	BotSpeed            float64       `json:"botSpeed"`
	BotFireInterval     time.Duration `json:"botFireInterval"`
	BotAccuracy         float64       `json:"botAccuracy"`         // 0..1, higher = less aim noise
	BotDodgeChance      float64       `json:"botDodgeChance"`      // 0..1 per threatening projectile per bot tick
	BotPredictionChance float64       `json:"botPredictionChance"` // 0..1 per shot
}

// Validate checks that a profile is usable
func (p DifficultyProfile) Validate() error {
	if p.BotSpeed <= 0 {
		return fmt.Errorf("bot speed must be positive, got %v", p.BotSpeed)
	}
	if p.BotFireInterval <= 0 {
		return fmt.Errorf("bot fire interval must be positive, got %v", p.BotFireInterval)
	}
	for name, v := range map[string]float64{
		"accuracy":          p.BotAccuracy,
		"dodge chance":      p.BotDodgeChance,
		"prediction chance": p.BotPredictionChance,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("bot %s must be within [0, 1], got %v", name, v)
		}
	}
	return nil
}

// AimNoise returns the total positional noise span for bot shots
func (p DifficultyProfile) AimNoise() float64 {
	return (1 - p.BotAccuracy) * 100
}

// ProfileTable maps every tier to its profile
type ProfileTable map[Tier]DifficultyProfile

// DefaultProfiles is the stock tuning table
var DefaultProfiles = ProfileTable{
	TierEasy: {
		BotSpeed:            1.8,
		BotFireInterval:     1800 * time.Millisecond,
		BotAccuracy:         0.5,
		BotDodgeChance:      0.3,
		BotPredictionChance: 0.3,
	},
	TierMedium: {
		BotSpeed:            2.5,
		BotFireInterval:     1200 * time.Millisecond,
		BotAccuracy:         0.75,
		BotDodgeChance:      0.6,
		BotPredictionChance: 0.6,
	},
	TierHard: {
		BotSpeed:            3.2,
		BotFireInterval:     800 * time.Millisecond,
		BotAccuracy:         0.95,
		BotDodgeChance:      0.85,
		BotPredictionChance: 0.9,
	},
}

// Lookup returns the profile for a tier
func (t ProfileTable) Lookup(tier Tier) (DifficultyProfile, error) {
	p, ok := t[tier]
	if !ok {
		return DifficultyProfile{}, fmt.Errorf("%w: %q", ErrUnknownTier, string(tier))
	}
	return p, nil
}

// Clone returns a copy that can be modified without touching the receiver
func (t ProfileTable) Clone() ProfileTable {
	out := make(ProfileTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Validate checks every tier is present and usable
func (t ProfileTable) Validate() error {
	for _, tier := range Tiers {
		p, ok := t[tier]
		if !ok {
			return fmt.Errorf("missing profile for tier %q", tier)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("tier %q: %w", tier, err)
		}
	}
	return nil
}
