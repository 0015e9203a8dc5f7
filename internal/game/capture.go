package game

import "github.com/ugaemi/divecatch-server/internal/motion"

// CaptureEvent records the tick on which a diving pursuer caught the evader.
type CaptureEvent struct {
	PursuerID string      `json:"pursuer_id"`
	EvaderID  string      `json:"evader_id"`
	Time      float64     `json:"time"`
	Position  motion.Vec2 `json:"position"`
}

// ProcessCapture applies the capture rule for one tick of overlap. It is
// meant to be called every tick the shapes overlap. Only a diving pursuer
// catches, and an evader is caught once; every other call is a no-op.
func ProcessCapture(p *Pursuer, e *Evader, overlapping bool, now float64) (CaptureEvent, bool) {
	if !overlapping || e.IsCaught() || !p.IsDiving() {
		return CaptureEvent{}, false
	}

	e.attach(p)
	return CaptureEvent{
		PursuerID: p.ID,
		EvaderID:  e.ID,
		Time:      now,
		Position:  p.Position(),
	}, true
}
