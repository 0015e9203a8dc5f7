package game

import "time"

// Session timing
const (
	TickRate     = 60 // ticks per second
	TickInterval = time.Second / TickRate
)

// Default screen, in world units. The pursuer's speeds and the evader's hop
// reach are tuned for a screen of roughly this size.
const (
	ScreenWidth  = 17.8
	ScreenHeight = 10.0
)

// Spawn
const (
	// MinSpawnGap is added to the evader's scared distance so a new session
	// does not start with the evader already fleeing.
	MinSpawnGap = 1.0
)
