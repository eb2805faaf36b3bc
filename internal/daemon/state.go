package daemon

import "fmt"

// State is the session controller state.
type State int32

const (
	// StateIdle means no cradle is watched.
	StateIdle State = iota
	StateWatching
	StateSessionActive
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWatching:
		return "watching"
	case StateSessionActive:
		return "session_active"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateIdle, StateWatching, StateSessionActive, StatePaused} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown daemon state %q", text)
}
