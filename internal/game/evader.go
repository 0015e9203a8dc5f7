package game

import (
	"github.com/google/uuid"

	"github.com/ugaemi/divecatch-server/internal/motion"
)

// EvaderSnapshot is the evader pose the presentation layer renders each tick.
type EvaderSnapshot struct {
	ID       string      `json:"id"`
	Position motion.Vec2 `json:"position"`
	Facing   float64     `json:"facing"`
	Mode     EvaderMode  `json:"mode"`
	Hops     int         `json:"hops"`
}

// Evader sits still until the pursuer comes within ScaredDistance, then hops
// away along a randomized heading that keeps it on screen when it can.
type Evader struct {
	ID string

	t   EvaderTunables
	rnd Randomizer

	pos    motion.Vec2
	facing float64
	mode   EvaderMode

	hopStartTime float64
	hopStart     motion.Vec2
	hopEnd       motion.Vec2
	hops         int

	// Set on capture. Position then follows attachedTo.
	attachedTo  PursuerView
	localOffset motion.Vec2
}

// NewEvader creates an idle evader at pos.
func NewEvader(t EvaderTunables, rnd Randomizer, pos motion.Vec2) *Evader {
	return &Evader{
		ID:   uuid.New().String(),
		t:    t,
		rnd:  rnd,
		pos:  pos,
		mode: EvaderIdle,
	}
}

// Position returns the world position. A caught evader rides on its captor.
func (e *Evader) Position() motion.Vec2 {
	if e.mode == EvaderCaught && e.attachedTo != nil {
		return e.attachedTo.Position().Add(e.localOffset)
	}
	return e.pos
}

func (e *Evader) Facing() float64  { return e.facing }
func (e *Evader) Mode() EvaderMode { return e.mode }
func (e *Evader) Hops() int        { return e.hops }
func (e *Evader) IsCaught() bool   { return e.mode == EvaderCaught }

// HopPath returns the endpoints of the current or most recent hop.
func (e *Evader) HopPath() (start, end motion.Vec2) {
	return e.hopStart, e.hopEnd
}

func (e *Evader) Snapshot() EvaderSnapshot {
	return EvaderSnapshot{
		ID:       e.ID,
		Position: e.Position(),
		Facing:   e.facing,
		Mode:     e.mode,
		Hops:     e.hops,
	}
}

// Tick advances the evader by one frame against the pursuer's position for
// that frame.
func (e *Evader) Tick(_ float64, now float64, pursuerPos motion.Vec2, screen Screen) {
	switch e.mode {
	case EvaderIdle:
		e.pos = screen.Clamp(e.pos)
		if e.pos.Dist(pursuerPos) < e.t.ScaredDistance {
			e.mode = EvaderHopStart
		}
	case EvaderHopStart:
		e.pos = screen.Clamp(e.pos)
		e.startHop(now, pursuerPos, screen)
	case EvaderHopping:
		e.performHop(now)
	case EvaderCaught:
		// Terminal. Position follows the captor.
	}
}

func (e *Evader) startHop(now float64, pursuerPos motion.Vec2, screen Screen) {
	e.hopStartTime = now
	e.hopStart = e.pos

	escape, ok := e.pos.Sub(pursuerPos).Normalize()
	if !ok {
		escape, _ = e.t.DefaultEscape.Normalize()
	}

	dir, end := e.searchHop(escape, screen)
	e.hopEnd = end
	e.facing = motion.VectorAngle(dir) + e.t.FacingOffset
	e.hops++
	e.mode = EvaderHopping
}

// searchHop picks the hop heading. It first samples around the escape
// heading, then anywhere on the circle, and finally settles for the last
// candidate even if it lands off screen.
func (e *Evader) searchHop(escape motion.Vec2, screen Screen) (dir, end motion.Vec2) {
	reach := e.t.HopSpeed * e.t.HopTime

	for i := 0; i < e.t.MaxMoveAttempts; i++ {
		dir = escape.Rotate(e.rnd.Range(-e.t.HopSpread, e.t.HopSpread))
		end = e.pos.Add(dir.Mul(reach))
		if screen.Contains(end) {
			return dir, end
		}
	}

	east := motion.Vec2{X: 1}
	for i := 0; i < e.t.FallbackAttempts; i++ {
		dir = east.Rotate(e.rnd.Range(0, 360))
		end = e.pos.Add(dir.Mul(reach))
		if screen.Contains(end) {
			return dir, end
		}
	}

	return dir, end
}

func (e *Evader) performHop(now float64) {
	progress := elapsedSince(now, e.hopStartTime) / e.t.HopTime
	if progress+timeEpsilon >= 1 {
		e.pos = e.hopEnd
		e.mode = EvaderIdle
		return
	}
	e.pos = motion.Lerp(e.hopStart, e.hopEnd, progress)
}

// attach freezes the evader onto captor. Only the capture protocol calls it.
func (e *Evader) attach(captor PursuerView) {
	e.mode = EvaderCaught
	e.attachedTo = captor
	e.localOffset = e.t.CaughtOffset
}
