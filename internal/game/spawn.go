package game

import "github.com/ugaemi/divecatch-server/internal/motion"

// spawnMargin keeps spawn points away from the screen edges, as a fraction
// of each screen dimension.
const spawnMargin = 0.1

// SpawnPositions picks on-screen start points for the pursuer and evader at
// least minDistance apart. Falls back to a random pair after maxAttempts.
func SpawnPositions(screen Screen, rnd Randomizer, minDistance float64) (pursuer, evader motion.Vec2) {
	const maxAttempts = 100

	for i := 0; i < maxAttempts; i++ {
		pursuer = randomPoint(screen, rnd)
		evader = randomPoint(screen, rnd)
		if pursuer.Dist(evader) >= minDistance {
			return pursuer, evader
		}
	}

	// Fallback: the screen may be too small for minDistance.
	return randomPoint(screen, rnd), randomPoint(screen, rnd)
}

func randomPoint(screen Screen, rnd Randomizer) motion.Vec2 {
	return screen.World(motion.Vec2{
		X: rnd.Range(spawnMargin, 1-spawnMargin),
		Y: rnd.Range(spawnMargin, 1-spawnMargin),
	})
}
