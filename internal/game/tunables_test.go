package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ugaemi/divecatch-server/internal/motion"
)

func TestDefaultTunables_Valid(t *testing.T) {
	tu := DefaultTunables()

	assert.NoError(t, tu.Validate())
	assert.InDelta(t, 0.03, tu.Pursuer.SlowSpeed, 1e-12)
	assert.Equal(t, 50, tu.Evader.MaxMoveAttempts)
	assert.Equal(t, 36, tu.Evader.FallbackAttempts)
	assert.Equal(t, -90.0, tu.Evader.FacingOffset)
}

func TestTunables_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tunables)
	}{
		{"zero dive time", func(tu *Tunables) { tu.Pursuer.DiveTime = 0 }},
		{"zero hop time", func(tu *Tunables) { tu.Evader.HopTime = 0 }},
		{"slow speed above max", func(tu *Tunables) { tu.Pursuer.SlowSpeed = 1 }},
		{"negative recovery", func(tu *Tunables) { tu.Pursuer.DiveRecoveryTime = -1 }},
		{"zero initial direction", func(tu *Tunables) { tu.Pursuer.InitialDirection = motion.Vec2{} }},
		{"zero default escape", func(tu *Tunables) { tu.Evader.DefaultEscape = motion.Vec2{} }},
		{"no move attempts", func(tu *Tunables) { tu.Evader.MaxMoveAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTunables()
			tt.mutate(&tu)
			assert.Error(t, tu.Validate())
		})
	}
}
