package game

import "encoding/json"

type PursuerMode int

const (
	PursuerSlow PursuerMode = iota
	PursuerFast
	PursuerDiving
	PursuerRecovering
)

func (m PursuerMode) String() string {
	switch m {
	case PursuerSlow:
		return "slow"
	case PursuerFast:
		return "fast"
	case PursuerDiving:
		return "diving"
	case PursuerRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes PursuerMode as a string.
func (m PursuerMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON deserializes PursuerMode from a string.
func (m *PursuerMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "fast":
		*m = PursuerFast
	case "diving":
		*m = PursuerDiving
	case "recovering":
		*m = PursuerRecovering
	default:
		*m = PursuerSlow
	}
	return nil
}

type EvaderMode int

const (
	EvaderIdle EvaderMode = iota
	EvaderHopStart
	EvaderHopping
	EvaderCaught
)

func (m EvaderMode) String() string {
	switch m {
	case EvaderIdle:
		return "idle"
	case EvaderHopStart:
		return "hop_start"
	case EvaderHopping:
		return "hopping"
	case EvaderCaught:
		return "caught"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EvaderMode as a string.
func (m EvaderMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON deserializes EvaderMode from a string.
func (m *EvaderMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "hop_start":
		*m = EvaderHopStart
	case "hopping":
		*m = EvaderHopping
	case "caught":
		*m = EvaderCaught
	default:
		*m = EvaderIdle
	}
	return nil
}
