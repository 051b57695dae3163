package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircuitInitToConnected(t *testing.T) {
	next, ok := AdvanceCircuit(CircuitInit, EventVersionExchanged)
	assert.True(t, ok)
	assert.Equal(t, CircuitConnected, next)
}

func TestCircuitEchoRoundTrip(t *testing.T) {
	next, ok := AdvanceCircuit(CircuitConnected, EventEchoTimeout)
	assert.True(t, ok)
	assert.Equal(t, CircuitUnresponsive, next)

	next, ok = AdvanceCircuit(next, EventEchoResponse)
	assert.True(t, ok)
	assert.Equal(t, CircuitConnected, next)
}

func TestCircuitDisconnectIsTerminal(t *testing.T) {
	next, ok := AdvanceCircuit(CircuitConnected, EventDisconnect)
	assert.True(t, ok)
	assert.Equal(t, CircuitDisconnected, next)

	_, ok = AdvanceCircuit(CircuitDisconnected, EventVersionExchanged)
	assert.False(t, ok)
}

func TestCircuitIllegalTransition(t *testing.T) {
	_, ok := AdvanceCircuit(CircuitInit, EventEchoResponse)
	assert.False(t, ok)
}

func TestChannelFullLifecycle(t *testing.T) {
	s := ChannelNeverConnected
	var ok bool

	s, ok = AdvanceChannel(s, EventSearchSent, CircuitInit)
	assert.True(t, ok)
	assert.Equal(t, ChannelAwaitSearchResponse, s)

	s, ok = AdvanceChannel(s, EventSearchResponseReceived, CircuitInit)
	assert.True(t, ok)
	assert.Equal(t, ChannelSendCreateRequest, s)

	s, ok = AdvanceChannel(s, EventCreateSent, CircuitInit)
	assert.True(t, ok)
	assert.Equal(t, ChannelAwaitCreateResponse, s)

	// Circuit not yet CONNECTED: CreateResponse is refused.
	_, ok = AdvanceChannel(s, EventCreateResponseReceived, CircuitInit)
	assert.False(t, ok)

	s, ok = AdvanceChannel(s, EventCreateResponseReceived, CircuitConnected)
	assert.True(t, ok)
	assert.Equal(t, ChannelConnected, s)

	s, ok = AdvanceChannel(s, EventClearSent, CircuitConnected)
	assert.True(t, ok)
	assert.Equal(t, ChannelMustClose, s)

	s, ok = AdvanceChannel(s, EventClearResponseReceived, CircuitConnected)
	assert.True(t, ok)
	assert.Equal(t, ChannelClosed, s)

	s, ok = AdvanceChannel(s, EventDestroy, CircuitConnected)
	assert.True(t, ok)
	assert.Equal(t, ChannelDestroyed, s)
}

func TestChannelServerDisconnFromConnected(t *testing.T) {
	next, ok := AdvanceChannel(ChannelConnected, EventServerDisconnReceived, CircuitConnected)
	assert.True(t, ok)
	assert.Equal(t, ChannelClosed, next)
}

func TestChannelNotFoundRetriesSearch(t *testing.T) {
	s, ok := AdvanceChannel(ChannelAwaitSearchResponse, EventNotFoundReceived, CircuitInit)
	assert.True(t, ok)
	assert.Equal(t, ChannelSendSearchRequest, s)
}

func TestChannelIllegalTransition(t *testing.T) {
	_, ok := AdvanceChannel(ChannelClosed, EventCreateSent, CircuitConnected)
	assert.False(t, ok)
}
