package holdem

import "encoding/json"

// Phase represents the phase of a hand
type Phase int

// constants for Phase
const (
	PhaseWaiting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreFlop:
		return "pre_flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	}

	return ""
}

// MarshalJSON encodes the phase as its wire name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
