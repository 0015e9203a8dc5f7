package game

type SessionState int

const (
	StateWaiting SessionState = iota
	StateRunning
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is how a chase session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCaught
	OutcomeEscaped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCaught:
		return "caught"
	case OutcomeEscaped:
		return "escaped"
	default:
		return "none"
	}
}
