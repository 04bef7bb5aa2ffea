package creditstream

import "sync/atomic"

// state is the consumer-side state machine: SPAWNING -> RUNNING -> DRAINING
// -> DONE, with Kill able to force a transition to DONE from any state.
type state int32

const (
	stateSpawning state = iota
	stateRunning
	stateDraining
	stateDone
)

func (s state) String() string {
	switch s {
	case stateSpawning:
		return "SPAWNING"
	case stateRunning:
		return "RUNNING"
	case stateDraining:
		return "DRAINING"
	case stateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// stateBox is an atomic holder for state, safe to read from the public
// Stream handle while the producer/consumer goroutines advance it.
type stateBox struct {
	v atomic.Int32
}

func newStateBox() *stateBox {
	b := &stateBox{}
	b.v.Store(int32(stateSpawning))
	return b
}

func (b *stateBox) set(s state) { b.v.Store(int32(s)) }

func (b *stateBox) get() state { return state(b.v.Load()) }
