package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ugaemi/divecatch-server/internal/motion"
)

func TestDecideOutcome(t *testing.T) {
	tests := []struct {
		name    string
		caught  bool
		expired bool
		want    Outcome
	}{
		{"still running", false, false, OutcomeNone},
		{"caught", true, false, OutcomeCaught},
		{"caught on the last tick", true, true, OutcomeCaught},
		{"survived", false, true, OutcomeEscaped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvader(motion.Vec2{}, centered())
			if tt.caught {
				e.attach(newTestPursuer(motion.Vec2{}))
			}
			assert.Equal(t, tt.want, DecideOutcome(e, tt.expired))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "caught", OutcomeCaught.String())
	assert.Equal(t, "escaped", OutcomeEscaped.String())
	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "running", StateRunning.String())
}
