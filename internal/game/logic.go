package game

// DecideOutcome returns the session result after a tick. A caught evader is
// the pursuer's win; surviving to the time limit is the evader's.
func DecideOutcome(e *Evader, timerExpired bool) Outcome {
	if e.IsCaught() {
		return OutcomeCaught
	}
	if timerExpired {
		return OutcomeEscaped
	}
	return OutcomeNone
}
