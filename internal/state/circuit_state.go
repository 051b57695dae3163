// Package state implements the CircuitState and ChannelState machines from
// spec §4.4: two small per-role transition tables with no notion of bytes,
// sockets, or time. internal/circuit is the only caller, and it raises
// protoerr.LocalProtocolError or protoerr.RemoteProtocolError when a
// transition is not in the table. It does not advance both roles' sub-states
// on every command: a sent version command moves only OurState and a
// received one only TheirState; echo responses and timeouts move only
// OurState; received channel responses other than ServerDisconn move only
// the channel's TheirState.
package state

import "fmt"

// CircuitState is the lifecycle of one side's view of a VirtualCircuit.
type CircuitState int

const (
	CircuitInit CircuitState = iota
	CircuitConnected
	CircuitResponsive
	CircuitUnresponsive
	CircuitDisconnected
)

func (s CircuitState) String() string {
	switch s {
	case CircuitInit:
		return "INIT"
	case CircuitConnected:
		return "CONNECTED"
	case CircuitResponsive:
		return "RESPONSIVE"
	case CircuitUnresponsive:
		return "UNRESPONSIVE"
	case CircuitDisconnected:
		return "DISCONNECTED"
	default:
		return fmt.Sprintf("CircuitState(%d)", int(s))
	}
}

// CircuitEvent names the triggers that can move a CircuitState forward.
type CircuitEvent int

const (
	EventVersionExchanged CircuitEvent = iota
	EventEchoTimeout
	EventEchoResponse
	EventDisconnect
)

func (e CircuitEvent) String() string {
	switch e {
	case EventVersionExchanged:
		return "VersionExchanged"
	case EventEchoTimeout:
		return "EchoTimeout"
	case EventEchoResponse:
		return "EchoResponse"
	case EventDisconnect:
		return "Disconnect"
	default:
		return fmt.Sprintf("CircuitEvent(%d)", int(e))
	}
}

// circuitTransitions is the full legal-transition table. DISCONNECTED has no
// outgoing row: it is terminal.
var circuitTransitions = map[CircuitState]map[CircuitEvent]CircuitState{
	CircuitInit: {
		EventVersionExchanged: CircuitConnected,
		EventDisconnect:       CircuitDisconnected,
	},
	CircuitConnected: {
		EventEchoTimeout: CircuitUnresponsive,
		EventEchoResponse: CircuitResponsive,
		EventDisconnect:  CircuitDisconnected,
	},
	CircuitResponsive: {
		EventEchoTimeout: CircuitUnresponsive,
		EventEchoResponse: CircuitResponsive,
		EventDisconnect:  CircuitDisconnected,
	},
	CircuitUnresponsive: {
		EventEchoResponse: CircuitConnected,
		EventDisconnect:   CircuitDisconnected,
	},
}

// AdvanceCircuit applies event to current and returns the resulting state.
// An event absent from the current state's row is reported via ok=false so
// the caller can decide whether that means LocalProtocolError or
// RemoteProtocolError (the table itself does not know who caused the
// event).
func AdvanceCircuit(current CircuitState, event CircuitEvent) (next CircuitState, ok bool) {
	row, exists := circuitTransitions[current]
	if !exists {
		return current, false
	}
	next, ok = row[event]
	if !ok {
		return current, false
	}
	return next, true
}
