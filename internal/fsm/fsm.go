// Package fsm encodes the notification cycle lifecycle.
package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle            State = "idle"
	StateConfigResolved  State = "config_resolved"
	StateWindowResolving State = "window_resolving"
	StateWindowFound     State = "window_found"
	StateWindowAbsent    State = "window_absent"
	StateDispatching     State = "dispatching"
	StateJoining         State = "joining"
	StateDone            State = "done"
)

const (
	// EventResolve accepts a resolved configuration for this cycle.
	EventResolve Event = "resolve"
	// EventSkip short-circuits a disabled cycle straight to done.
	EventSkip Event = "skip"
	// EventSearch begins window discovery.
	EventSearch Event = "search"
	// EventHit and EventMiss report the discovery outcome.
	EventHit  Event = "hit"
	EventMiss Event = "miss"
	// EventStale demotes a found-but-invalidated handle to absent.
	EventStale Event = "stale"
	// EventDispatch starts the concurrent sound/highlight phase.
	EventDispatch Event = "dispatch"
	// EventJoin waits out the background sound path.
	EventJoin Event = "join"
	// EventFinish terminates the cycle.
	EventFinish Event = "finish"
)

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateIdle:
		if event == EventResolve {
			return StateConfigResolved, nil
		}
	case StateConfigResolved:
		switch event {
		case EventSkip:
			return StateDone, nil
		case EventSearch:
			return StateWindowResolving, nil
		}
	case StateWindowResolving:
		switch event {
		case EventHit:
			return StateWindowFound, nil
		case EventMiss:
			return StateWindowAbsent, nil
		}
	case StateWindowFound:
		switch event {
		case EventStale:
			return StateWindowAbsent, nil
		case EventDispatch:
			return StateDispatching, nil
		}
	case StateWindowAbsent:
		switch event {
		case EventDispatch:
			return StateDispatching, nil
		case EventFinish:
			return StateDone, nil
		}
	case StateDispatching:
		if event == EventJoin {
			return StateJoining, nil
		}
	case StateJoining:
		if event == EventFinish {
			return StateDone, nil
		}
	case StateDone:
		// terminal
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}

	return current, invalidTransition(current, event)
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
