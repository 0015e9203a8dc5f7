package game

import (
	"errors"
	"fmt"

	"github.com/ugaemi/divecatch-server/internal/motion"
)

// Tunables holds every gameplay constant for one session. A Tunables value is
// copied into each actor at construction and never mutated afterwards.
type Tunables struct {
	Pursuer PursuerTunables `yaml:"pursuer" json:"pursuer"`
	Evader  EvaderTunables  `yaml:"evader" json:"evader"`

	// CatchRadius is the distance under which the default overlap test
	// reports the two actors as touching.
	CatchRadius float64 `yaml:"catch_radius" json:"catch_radius"`
}

// PursuerTunables configures the pursuer. Speeds are world units per tick,
// rates are per second.
type PursuerTunables struct {
	MaxSpeed         float64     `yaml:"max_speed" json:"max_speed"`
	SlowSpeed        float64     `yaml:"slow_speed" json:"slow_speed"`
	FastThreshold    float64     `yaml:"fast_threshold" json:"fast_threshold"`
	SlowThreshold    float64     `yaml:"slow_threshold" json:"slow_threshold"`
	FastRotateSpeed  float64     `yaml:"fast_rotate_speed" json:"fast_rotate_speed"` // deg/s
	FastRotateMax    float64     `yaml:"fast_rotate_max" json:"fast_rotate_max"`     // deg
	SpeedDecayRate   float64     `yaml:"speed_decay_rate" json:"speed_decay_rate"`
	TransitionBuffer float64     `yaml:"transition_buffer" json:"transition_buffer"` // seconds
	DiveTime         float64     `yaml:"dive_time" json:"dive_time"`
	DiveRecoveryTime float64     `yaml:"dive_recovery_time" json:"dive_recovery_time"`
	DiveDistance     float64     `yaml:"dive_distance" json:"dive_distance"`
	InitialDirection motion.Vec2 `yaml:"initial_direction" json:"initial_direction"`
}

// EvaderTunables configures the evader.
type EvaderTunables struct {
	HopTime          float64     `yaml:"hop_time" json:"hop_time"`
	HopSpeed         float64     `yaml:"hop_speed" json:"hop_speed"`
	ScaredDistance   float64     `yaml:"scared_distance" json:"scared_distance"`
	MaxMoveAttempts  int         `yaml:"max_move_attempts" json:"max_move_attempts"`
	FallbackAttempts int         `yaml:"fallback_attempts" json:"fallback_attempts"`
	HopSpread        float64     `yaml:"hop_spread" json:"hop_spread"`       // deg, either side of the escape heading
	FacingOffset     float64     `yaml:"facing_offset" json:"facing_offset"` // deg added to the hop heading
	DefaultEscape    motion.Vec2 `yaml:"default_escape" json:"default_escape"`
	CaughtOffset     motion.Vec2 `yaml:"caught_offset" json:"caught_offset"`
}

// DefaultTunables returns the tuned values the game ships with.
func DefaultTunables() Tunables {
	const maxSpeed = 0.10
	return Tunables{
		Pursuer: PursuerTunables{
			MaxSpeed:         maxSpeed,
			SlowSpeed:        maxSpeed * 0.3,
			FastThreshold:    0.3,
			SlowThreshold:    0.06,
			FastRotateSpeed:  200,
			FastRotateMax:    10,
			SpeedDecayRate:   0.4,
			TransitionBuffer: 0.1,
			DiveTime:         0.3,
			DiveRecoveryTime: 0.5,
			DiveDistance:     3.0,
			InitialDirection: motion.Vec2{X: -1},
		},
		Evader: EvaderTunables{
			HopTime:          0.2,
			HopSpeed:         6.5,
			ScaredDistance:   3.0,
			MaxMoveAttempts:  50,
			FallbackAttempts: 36,
			HopSpread:        60,
			FacingOffset:     -90,
			DefaultEscape:    motion.Vec2{X: 1},
			CaughtOffset:     motion.Vec2{Y: -0.5},
		},
		CatchRadius: 0.5,
	}
}

// Validate reports the first tunable that would make a state machine
// divide by zero or never leave a state.
func (t Tunables) Validate() error {
	p, e := t.Pursuer, t.Evader
	checks := []struct {
		name string
		v    float64
	}{
		{"pursuer.max_speed", p.MaxSpeed},
		{"pursuer.dive_time", p.DiveTime},
		{"evader.hop_time", e.HopTime},
		{"evader.hop_speed", e.HopSpeed},
		{"evader.scared_distance", e.ScaredDistance},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", c.name, c.v)
		}
	}
	if p.SlowSpeed < 0 || p.SlowSpeed >= p.MaxSpeed {
		return fmt.Errorf("pursuer.slow_speed must be in [0, max_speed), got %v", p.SlowSpeed)
	}
	if p.DiveRecoveryTime < 0 || p.TransitionBuffer < 0 || p.SpeedDecayRate < 0 {
		return errors.New("pursuer timers and rates must not be negative")
	}
	if _, ok := p.InitialDirection.Normalize(); !ok {
		return errors.New("pursuer.initial_direction must be non-zero")
	}
	if _, ok := e.DefaultEscape.Normalize(); !ok {
		return errors.New("evader.default_escape must be non-zero")
	}
	if e.MaxMoveAttempts < 1 || e.FallbackAttempts < 0 {
		return fmt.Errorf("evader attempts out of range: max=%d fallback=%d", e.MaxMoveAttempts, e.FallbackAttempts)
	}
	return nil
}
