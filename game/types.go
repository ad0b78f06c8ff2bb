package game

import (
	"math"
	"time"
)

// Arena constants
const (
	// Arena dimensions in world units
	ArenaWidth  = 1000
	ArenaHeight = 650

	// WallMargin keeps combatants inset from the arena walls
	WallMargin = 20

	// BotCeilingOffset is subtracted from the arena midline to get the bot's lowest allowed Y
	BotCeilingOffset = 50

	// ProjectileBoundsMargin lets projectiles fly this far past the walls before being culled
	ProjectileBoundsMargin = 50
)

// Combatant constants
const (
	CombatantRadius = 22
	MaxHealth       = 5600
	MaxAmmo         = 3

	PlayerSpeed        = 3.5
	PlayerFireCooldown = 350 * time.Millisecond
	PlayerSpread       = 0.03 // Total angular spread of player shots in radians

	ReloadDelay = 1500 * time.Millisecond

	// MuzzleDistance is how far in front of the shooter a projectile spawns
	MuzzleDistance = 30
)

// Projectile constants
const (
	ProjectileRadius = 7
	ProjectileSpeed  = 12
	ProjectileDamage = 560
)

// Round rules
const (
	DefaultTargetKills  = 20
	DefaultRoundSeconds = 100
)

// Bot velocity damping applied every frame
const BotDamping = 0.92

// Game timing
const (
	FrameHz  = 60
	BotHz    = 5
	TimerHz  = 1
	FireHz   = 10 // Auto-fire poll while the fire control is held
	FrameDur = time.Second / FrameHz
	BotDur   = time.Second / BotHz
	TimerDur = time.Second / TimerHz
	FireDur  = time.Second / FireHz
)

// Side identifies one of the two combatants
type Side int

const (
	SidePlayer Side = iota
	SideBot
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideBot
	}
	return SidePlayer
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Color is the presentation color for this side's combatant and shots
func (s Side) Color() string {
	if s == SidePlayer {
		return "#10b981"
	}
	return "#ef4444"
}

// MarshalText encodes the side by name for JSON and msgpack snapshots
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Phase is the round lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Outcome is the final round result from the player's point of view
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// EndReason records why a round ended
type EndReason string

const (
	EndNone      EndReason = ""
	EndKills     EndReason = "kills"
	EndTime      EndReason = "time"
	EndAbandoned EndReason = "abandoned"
)

// RoundState holds the counters for the current round
type RoundState struct {
	ID          string    `json:"id"`
	Phase       Phase     `json:"phase"`
	Tier        Tier      `json:"tier"`
	PlayerKills int       `json:"playerKills"`
	BotKills    int       `json:"botKills"`
	TargetKills int       `json:"targetKills"`
	TimeLeft    int       `json:"timeLeft"` // Seconds
	TotalShots  int       `json:"totalShots"`
	TotalHits   int       `json:"totalHits"`
	TotalDamage int       `json:"totalDamage"`
	Outcome     Outcome   `json:"outcome,omitempty"`
	EndReason   EndReason `json:"endReason,omitempty"`
	StartedAt   time.Time `json:"-"`
	EndedAt     time.Time `json:"-"`
}

// Active reports whether the round is running
func (r *RoundState) Active() bool {
	return r.Phase == PhaseActive
}

// Accuracy returns the player's hit percentage, rounded half up like the scoreboard shows it
func (r *RoundState) Accuracy() int {
	if r.TotalShots <= 0 {
		return 0
	}
	return int(math.Floor(100*float64(r.TotalHits)/float64(r.TotalShots) + 0.5))
}

// Kills returns the kill counter for a side
func (r *RoundState) Kills(side Side) int {
	if side == SidePlayer {
		return r.PlayerKills
	}
	return r.BotKills
}

// Distance calculates distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// NormalizeAngleSigned normalizes an angle to the range [-π, π].
func NormalizeAngleSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Finite reports whether every value is a usable number
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
