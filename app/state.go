package app

// State represents the current application state.
type State int

const (
	StateConnecting State = iota // waiting for the backend health check
	StateIdle                    // ready for user input
	StateBusy                    // request in flight
	StateRevealing               // assistant reply revealing chunk by chunk
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	case StateRevealing:
		return "revealing"
	default:
		return "unknown"
	}
}
