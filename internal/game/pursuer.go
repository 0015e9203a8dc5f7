package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/ugaemi/divecatch-server/internal/motion"
)

// timeEpsilon absorbs float drift when dt steps sum to a duration exactly.
const timeEpsilon = 1e-9

// PursuerView is the read-only face of a pursuer handed to other actors.
type PursuerView interface {
	Position() motion.Vec2
	IsDiving() bool
}

// PursuerSnapshot is the pose the presentation layer renders each tick.
type PursuerSnapshot struct {
	ID       string      `json:"id"`
	Position motion.Vec2 `json:"position"`
	Facing   float64     `json:"facing"`
	Mode     PursuerMode `json:"mode"`
	Speed    float64     `json:"speed"`
}

// Pursuer is the controllable chasing actor.
//
// While slow it turns and sets its speed instantly from the pointer. Once it
// reaches max speed it goes fast: it can only turn within a narrow cone and
// bleeds speed when asked to turn harder, dropping back to slow below the
// slow cap. Holding the primary action dives a fixed distance backwards
// along its facing, followed by a recovery with no movement.
type Pursuer struct {
	ID string

	t PursuerTunables

	pos    motion.Vec2
	facing float64

	speed       float64
	targetSpeed float64
	angle       float64
	targetAngle float64

	mode      PursuerMode
	holdTimer float64

	diveStart     motion.Vec2
	diveEnd       motion.Vec2
	diveStartTime float64
	dives         int
}

// NewPursuer creates a slow, stationary pursuer at pos.
func NewPursuer(t PursuerTunables, pos motion.Vec2) *Pursuer {
	return &Pursuer{
		ID:   uuid.New().String(),
		t:    t,
		pos:  pos,
		mode: PursuerSlow,
	}
}

func (p *Pursuer) Position() motion.Vec2 { return p.pos }
func (p *Pursuer) Facing() float64       { return p.facing }
func (p *Pursuer) Mode() PursuerMode     { return p.mode }
func (p *Pursuer) Speed() float64        { return p.speed }
func (p *Pursuer) Heading() float64      { return p.angle }
func (p *Pursuer) Dives() int            { return p.dives }

// IsDiving reports whether the pursuer is mid-dive, the only window in which
// it can catch the evader.
func (p *Pursuer) IsDiving() bool {
	return p.mode == PursuerDiving
}

// DivePath returns the endpoints of the current or most recent dive.
func (p *Pursuer) DivePath() (start, end motion.Vec2) {
	return p.diveStart, p.diveEnd
}

func (p *Pursuer) Snapshot() PursuerSnapshot {
	return PursuerSnapshot{
		ID:       p.ID,
		Position: p.pos,
		Facing:   p.facing,
		Mode:     p.mode,
		Speed:    p.speed,
	}
}

// Tick advances the pursuer by one frame. dt is the frame length and now the
// simulation time, both in seconds.
func (p *Pursuer) Tick(dt, now float64, in Input, screen Screen) {
	p.pos = screen.Clamp(p.pos)

	switch p.mode {
	case PursuerSlow:
		p.tickSlow(dt, now, in, screen)
	case PursuerFast:
		p.tickFast(dt, now, in, screen)
	case PursuerDiving:
		p.tickDiving(now)
	case PursuerRecovering:
		p.tickRecovering(now)
	}
}

func (p *Pursuer) tickSlow(dt, now float64, in Input, screen Screen) {
	// Holds slow right after leaving fast.
	if p.holdTimer >= 0 {
		p.holdTimer -= dt
	}
	if p.checkDive(now, in) {
		return
	}
	p.steer(in, screen)

	p.angle = p.targetAngle
	p.speed = p.targetSpeed

	if p.holdTimer <= 0 && p.speed >= p.t.MaxSpeed {
		p.mode = PursuerFast
	}

	// A tick that just switched to fast does not move.
	if p.speed <= p.t.SlowSpeed {
		p.move()
	}
}

func (p *Pursuer) tickFast(dt, now float64, in Input, screen Screen) {
	if p.checkDive(now, in) {
		return
	}
	p.steer(in, screen)

	delta := motion.SignedAngleDelta(p.angle, p.targetAngle)
	if math.Abs(delta) > p.t.FastRotateMax {
		p.speed = math.Max(p.speed-p.t.SpeedDecayRate*dt, 0)
	} else {
		p.angle += motion.Sign(delta) * p.t.FastRotateSpeed * dt
	}

	p.move()

	if p.speed <= p.t.SlowSpeed {
		p.holdTimer = p.t.TransitionBuffer
		p.speed = p.t.SlowSpeed
		p.mode = PursuerSlow
	}
}

func (p *Pursuer) tickDiving(now float64) {
	progress := elapsedSince(now, p.diveStartTime) / p.t.DiveTime
	if progress+timeEpsilon >= 1 {
		p.pos = p.diveEnd
		p.mode = PursuerRecovering
		return
	}
	p.pos = motion.Lerp(p.diveStart, p.diveEnd, progress)
}

func (p *Pursuer) tickRecovering(now float64) {
	if elapsedSince(now, p.diveStartTime) > p.t.DiveTime+p.t.DiveRecoveryTime {
		p.mode = PursuerSlow
	}
}

// checkDive starts a dive when the action is held. The caller must abandon
// the rest of its tick when it returns true.
func (p *Pursuer) checkDive(now float64, in Input) bool {
	if !in.Action || p.mode == PursuerDiving || p.mode == PursuerRecovering {
		return false
	}
	p.mode = PursuerDiving
	p.speed = 0
	p.diveStart = p.pos
	p.diveEnd = p.pos.Sub(motion.Right(p.facing).Mul(p.t.DiveDistance))
	p.diveStartTime = now
	p.dives++
	return true
}

// steer derives the requested heading and speed from the pointer. The
// heading points from the pointer to the pursuer; InitialDirection flips it
// back toward the pointer when moving.
func (p *Pursuer) steer(in Input, screen Screen) {
	offset := p.pos.Sub(in.Pointer)
	p.targetAngle = motion.VectorAngle(offset)

	var magnitude float64
	if extent := screen.Extent(); extent > 0 {
		magnitude = offset.Len() / extent
	}

	switch {
	case magnitude > p.t.FastThreshold:
		p.targetSpeed = p.t.MaxSpeed
	case magnitude > p.t.SlowThreshold:
		p.targetSpeed = p.t.SlowSpeed
	default:
		p.targetSpeed = 0
	}
}

// move advances one tick along the current heading and faces it.
func (p *Pursuer) move() {
	dir := motion.FromAngle(p.angle, p.t.InitialDirection)
	p.pos = p.pos.Add(dir.Mul(p.speed))
	p.facing = p.angle
}
