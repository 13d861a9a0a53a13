package hmm

import (
	"fmt"
	"strings"
)

// Topology constrains which transitions a model may use.
type Topology int

const (
	// Ergodic allows every transition and learns π.
	Ergodic Topology = iota
	// LeftRight allows i → j only for i ≤ j ≤ i+delta and starts in state 0.
	LeftRight
)

// String returns the lower-case topology name.
func (t Topology) String() string {
	switch t {
	case Ergodic:
		return "ergodic"
	case LeftRight:
		return "leftright"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Valid reports whether t is a known topology.
func (t Topology) Valid() bool { return t == Ergodic || t == LeftRight }

// ParseTopology accepts "ergodic" and "leftright" / "left-right" (any case).
func ParseTopology(s string) (Topology, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "ergodic":
		return Ergodic, nil
	case "leftright":
		return LeftRight, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownTopology)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrUnknownTopology
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(b []byte) error {
	v, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = v

	return nil
}

// State is the model lifecycle stage.
type State int

const (
	Uninitialized State = iota
	Randomized
	Trained
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Randomized:
		return "randomized"
	case Trained:
		return "trained"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
