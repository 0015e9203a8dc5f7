package game

import (
	"math"
	"math/rand"

	"github.com/ugaemi/divecatch-server/internal/motion"
)

// Screen is the visible world rectangle. Viewport coordinates map Min to
// (0,0) and Max to (1,1).
type Screen struct {
	Min motion.Vec2 `json:"min"`
	Max motion.Vec2 `json:"max"`
}

// NewScreen returns a width x height screen centered on the world origin.
func NewScreen(width, height float64) Screen {
	return Screen{
		Min: motion.Vec2{X: -width / 2, Y: -height / 2},
		Max: motion.Vec2{X: width / 2, Y: height / 2},
	}
}

// Viewport converts a world position to normalized screen coordinates.
func (s Screen) Viewport(p motion.Vec2) motion.Vec2 {
	w := s.Max.X - s.Min.X
	h := s.Max.Y - s.Min.Y
	if w == 0 || h == 0 {
		return motion.Vec2{}
	}
	return motion.Vec2{X: (p.X - s.Min.X) / w, Y: (p.Y - s.Min.Y) / h}
}

// World converts normalized screen coordinates back to a world position.
func (s Screen) World(v motion.Vec2) motion.Vec2 {
	return motion.Vec2{
		X: s.Min.X + v.X*(s.Max.X-s.Min.X),
		Y: s.Min.Y + v.Y*(s.Max.Y-s.Min.Y),
	}
}

// Contains reports whether p lies strictly inside the screen, i.e. its
// viewport coordinates are in (0,1) on both axes.
func (s Screen) Contains(p motion.Vec2) bool {
	return p.X > s.Min.X && p.X < s.Max.X && p.Y > s.Min.Y && p.Y < s.Max.Y
}

// Clamp pulls p onto the screen, edges inclusive. Positions already on
// screen are returned unchanged.
func (s Screen) Clamp(p motion.Vec2) motion.Vec2 {
	return motion.Vec2{
		X: math.Min(math.Max(p.X, s.Min.X), s.Max.X),
		Y: math.Min(math.Max(p.Y, s.Min.Y), s.Max.Y),
	}
}

// Extent is the distance from the world origin to the top-right screen
// corner. Pointer distances are normalized against it.
func (s Screen) Extent() float64 {
	return s.Max.Len()
}

// Input is the controller sample for one tick.
type Input struct {
	Pointer motion.Vec2 `json:"pointer"`
	Action  bool        `json:"action"` // primary action held
}

// Randomizer draws uniform floats in [min, max).
type Randomizer interface {
	Range(min, max float64) float64
}

type mathRandomizer struct {
	r *rand.Rand
}

// NewRandomizer returns a seeded Randomizer. It must not be shared across
// goroutines.
func NewRandomizer(seed int64) Randomizer {
	return &mathRandomizer{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRandomizer) Range(min, max float64) float64 {
	return min + m.r.Float64()*(max-min)
}

// Clock supplies simulation time in seconds.
type Clock interface {
	Now() float64
}

// SimClock is a manually advanced Clock.
type SimClock struct {
	now float64
}

func (c *SimClock) Now() float64 {
	return c.now
}

// Advance moves the clock forward by dt and returns the new time. Negative
// steps are ignored so time never runs backwards.
func (c *SimClock) Advance(dt float64) float64 {
	if dt > 0 {
		c.now += dt
	}
	return c.now
}

// OverlapFunc reports whether the pursuer and evader shapes touch.
type OverlapFunc func(pursuer, evader motion.Vec2) bool

// CircleOverlap treats both actors as points and overlaps within radius.
func CircleOverlap(radius float64) OverlapFunc {
	return func(pursuer, evader motion.Vec2) bool {
		return pursuer.Dist(evader) <= radius
	}
}

// elapsedSince guards against clock irregularities.
func elapsedSince(now, start float64) float64 {
	if e := now - start; e > 0 {
		return e
	}
	return 0
}
