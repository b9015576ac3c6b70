package system

// Signal is a loop control value raised from inside a tick. Signals are
// expected control flow, not failures.
type Signal int

const (
	SignalNone Signal = iota
	SignalQuit        // orderly shutdown
	SignalNext        // advance to the next level
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalQuit:
		return "quit"
	case SignalNext:
		return "next"
	default:
		return "unknown"
	}
}

// Merge combines two signals raised during the same dispatch. Quit wins
// over Next, which wins over None.
func (s Signal) Merge(o Signal) Signal {
	if s == SignalQuit || o == SignalQuit {
		return SignalQuit
	}
	if s == SignalNext || o == SignalNext {
		return SignalNext
	}
	return SignalNone
}
