// pkg/bootstrap/state.go
package bootstrap

import "fmt"

// State is a stage of the bootstrap state machine. The machine executes
// exactly once per invocation: no state is ever revisited and the only
// terminal state is StateDone.
type State int

const (
	StateStart State = iota
	StateInterpreterFound
	StateEnvironmentReady
	StatePrimaryInstalled
	StatePrimaryFailed
	StateFallbackAttempted
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateInterpreterFound:
		return "INTERPRETER_FOUND"
	case StateEnvironmentReady:
		return "ENVIRONMENT_READY"
	case StatePrimaryInstalled:
		return "PRIMARY_INSTALLED"
	case StatePrimaryFailed:
		return "PRIMARY_FAILED"
	case StateFallbackAttempted:
		return "FALLBACK_ATTEMPTED"
	case StateDone:
		return "DONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateStart:
		return to == StateInterpreterFound || to == StateDone
	case StateInterpreterFound:
		return to == StateEnvironmentReady || to == StateDone
	case StateEnvironmentReady:
		return to == StatePrimaryInstalled || to == StatePrimaryFailed
	case StatePrimaryInstalled:
		return to == StateDone
	case StatePrimaryFailed:
		return to == StateFallbackAttempted || to == StateDone
	case StateFallbackAttempted:
		return to == StateDone
	default:
		// Terminal. Nothing leaves DONE.
		return false
	}
}

// transition performs a validated state change. An invalid transition is an
// internal invariant violation, not a user-facing condition.
func (b *Bootstrapper) transition(to State) error {
	if !isAllowedTransition(b.state, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", b.state, to)
	}
	b.logger.Printf("State: %s -> %s", b.state, to)
	b.state = to
	return nil
}
