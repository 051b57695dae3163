package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulaginds/caproto-go/internal/command"
)

// A channel created unbound, then bound once a search resolves its host,
// ends up registered on the right circuit and reachable by cid.
func TestRegistryBindChannelAfterSearch(t *testing.T) {
	r := NewRegistry(command.CLIENT)

	ids, cmds, err := r.Broadcaster().Search([]string{"simple:A"})
	require.NoError(t, err)
	cid := ids["simple:A"]

	ch, err := r.NewChannel("simple:A", cid, 0)
	require.NoError(t, err)
	assert.Nil(t, ch.circuit)

	_, ok := r.Channel(cid)
	assert.True(t, ok)

	err = r.BindChannel(ch, "127.0.0.1", 5064)
	require.NoError(t, err)
	assert.NotNil(t, ch.circuit)
	assert.Same(t, ch.Circuit(), ch.circuit)

	boundCh, ok := ch.Circuit().ChannelByCID(cid)
	require.True(t, ok)
	assert.Same(t, ch, boundCh)

	// Binding a second time is rejected; the channel is already owned.
	err = r.BindChannel(ch, "127.0.0.1", 5064)
	assert.Error(t, err)

	_ = cmds
}

// Two channels at the same (host, port, priority) share one circuit; a
// different priority gets its own.
func TestRegistryCircuitForReusesByKey(t *testing.T) {
	r := NewRegistry(command.CLIENT)

	c1, err := r.CircuitFor("127.0.0.1", 5064, 0)
	require.NoError(t, err)
	c2, err := r.CircuitFor("127.0.0.1", 5064, 0)
	require.NoError(t, err)
	assert.Same(t, c1, c2)

	c3, err := r.CircuitFor("127.0.0.1", 5064, 1)
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)

	circuits := r.Circuits()
	assert.Len(t, circuits, 2)
}

// Invalid channel parameters are rejected before any circuit is touched.
func TestRegistryNewChannelValidation(t *testing.T) {
	r := NewRegistry(command.CLIENT)

	_, err := r.NewChannel("", 0, 0)
	assert.Error(t, err)

	_, err = r.NewChannel("simple:A", 1, 100)
	assert.Error(t, err)
}
