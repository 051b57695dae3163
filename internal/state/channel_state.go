package state

import "fmt"

// ChannelState is the lifecycle of one side's view of a Channel within a
// circuit.
type ChannelState int

const (
	ChannelNeverConnected ChannelState = iota
	ChannelSendSearchRequest
	ChannelAwaitSearchResponse
	ChannelSendCreateRequest
	ChannelAwaitCreateResponse
	ChannelConnected
	ChannelMustClose
	ChannelClosed
	ChannelDestroyed
)

func (s ChannelState) String() string {
	switch s {
	case ChannelNeverConnected:
		return "NEVER_CONNECTED"
	case ChannelSendSearchRequest:
		return "SEND_SEARCH_REQUEST"
	case ChannelAwaitSearchResponse:
		return "AWAIT_SEARCH_RESPONSE"
	case ChannelSendCreateRequest:
		return "SEND_CREATE_REQUEST"
	case ChannelAwaitCreateResponse:
		return "AWAIT_CREATE_RESPONSE"
	case ChannelConnected:
		return "CONNECTED"
	case ChannelMustClose:
		return "MUST_CLOSE"
	case ChannelClosed:
		return "CLOSED"
	case ChannelDestroyed:
		return "DESTROYED"
	default:
		return fmt.Sprintf("ChannelState(%d)", int(s))
	}
}

// ChannelEvent names the triggers that can move a ChannelState forward.
type ChannelEvent int

const (
	EventSearchSent ChannelEvent = iota
	EventSearchResponseReceived
	EventNotFoundReceived
	EventCreateSent
	EventCreateResponseReceived
	EventCreateFailureReceived
	EventClearSent
	EventClearResponseReceived
	EventServerDisconnReceived
	EventDestroy
)

func (e ChannelEvent) String() string {
	names := [...]string{
		"SearchSent", "SearchResponseReceived", "NotFoundReceived",
		"CreateSent", "CreateResponseReceived", "CreateFailureReceived",
		"ClearSent", "ClearResponseReceived", "ServerDisconnReceived", "Destroy",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return fmt.Sprintf("ChannelEvent(%d)", int(e))
}

var channelTransitions = map[ChannelState]map[ChannelEvent]ChannelState{
	ChannelNeverConnected: {
		EventSearchSent: ChannelAwaitSearchResponse,
		EventCreateSent: ChannelAwaitCreateResponse,
	},
	ChannelAwaitSearchResponse: {
		EventSearchResponseReceived: ChannelSendCreateRequest,
		EventNotFoundReceived:       ChannelSendSearchRequest,
	},
	ChannelSendSearchRequest: {
		EventSearchSent: ChannelAwaitSearchResponse,
	},
	ChannelSendCreateRequest: {
		EventCreateSent: ChannelAwaitCreateResponse,
	},
	ChannelAwaitCreateResponse: {
		// EventCreateResponseReceived is gated separately: it additionally
		// requires the circuit to be CONNECTED (spec §4.4). See
		// AdvanceChannel.
		EventCreateResponseReceived: ChannelConnected,
		EventCreateFailureReceived:  ChannelClosed,
	},
	ChannelConnected: {
		EventClearSent:             ChannelMustClose,
		EventServerDisconnReceived: ChannelClosed,
	},
	ChannelMustClose: {
		EventClearResponseReceived: ChannelClosed,
	},
	ChannelClosed: {
		EventDestroy: ChannelDestroyed,
	},
}

// AdvanceChannel applies event to current, given the owning circuit's
// current state. A channel can never progress past AWAIT_CREATE_RESPONSE
// while its circuit is not CONNECTED or RESPONSIVE — the one piece of
// cross-machine coupling the spec calls out explicitly.
func AdvanceChannel(current ChannelState, event ChannelEvent, circuit CircuitState) (next ChannelState, ok bool) {
	if event == EventCreateResponseReceived {
		if circuit != CircuitConnected && circuit != CircuitResponsive {
			return current, false
		}
	}
	row, exists := channelTransitions[current]
	if !exists {
		return current, false
	}
	next, ok = row[event]
	if !ok {
		return current, false
	}
	return next, true
}
