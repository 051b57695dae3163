package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/framer"
)

// Scenario A: a client broadcasts a search, then feeds back a response.
func TestBroadcasterSearchThenResponse(t *testing.T) {
	client := NewBroadcaster(command.CLIENT)

	ids, cmds, err := client.Search([]string{"simple:A"})
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	cid, ok := ids["simple:A"]
	require.True(t, ok)
	assert.Equal(t, uint32(0), cid)

	name, unanswered := client.Unanswered(cid)
	assert.True(t, unanswered)
	assert.Equal(t, "simple:A", name)

	datagram, err := client.Send(cmds...)
	require.NoError(t, err)
	assert.NotEmpty(t, datagram)

	server := NewBroadcaster(command.SERVER)
	server.Feed(datagram, "127.0.0.1:5064")
	decoded, from, err := server.NextCommand()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5064", from)
	sr, ok := decoded.(*command.SearchRequest)
	require.True(t, ok)
	assert.Equal(t, "simple:A", sr.Name)
	assert.Equal(t, cid, sr.CID)

	resp := &command.SearchResponse{ServerPort: 5064, CID: cid}
	buf, err := resp.Marshal()
	require.NoError(t, err)

	client.Feed(buf, "127.0.0.1:5064")
	decoded, from, err = client.NextCommand()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5064", from)
	assert.IsType(t, &command.SearchResponse{}, decoded)

	_, unanswered = client.Unanswered(cid)
	assert.False(t, unanswered)
}

// A search-id is never reused while it is still unanswered.
func TestBroadcasterSearchIDsSkipLive(t *testing.T) {
	b := NewBroadcaster(command.CLIENT)

	ids1, _, err := b.Search([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), ids1["a"])
	assert.Equal(t, uint32(1), ids1["b"])

	// "a" answers, freeing id 0. The counter keeps moving forward rather
	// than reusing freed ids, so "c" gets the next value, 2.
	delete(b.unansweredSearches, ids1["a"])

	ids2, _, err := b.Search([]string{"c"})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), ids2["c"])
}

// Commands within one datagram are yielded in order; a later Feed from a
// different sender queues strictly after the first datagram is drained.
func TestBroadcasterDatagramOrderingAcrossSenders(t *testing.T) {
	b := NewBroadcaster(command.SERVER)

	buf1, err := (&command.RepeaterConfirmResponse{RepeaterAddress: 5065}).Marshal()
	require.NoError(t, err)
	buf2, err := (&command.EchoRequest{}).Marshal()
	require.NoError(t, err)

	b.Feed(append(buf1, buf2...), "10.0.0.1:5065")
	b.Feed(buf2, "10.0.0.2:5065")

	first, from, err := b.NextCommand()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:5065", from)
	assert.IsType(t, &command.RepeaterConfirmResponse{}, first)

	second, from, err := b.NextCommand()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:5065", from)
	assert.IsType(t, &command.EchoRequest{}, second)

	third, from, err := b.NextCommand()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2:5065", from)
	assert.IsType(t, &command.EchoRequest{}, third)

	_, _, err = b.NextCommand()
	assert.IsType(t, &framer.NeedData{}, err)
}

// A partial command at the end of a datagram is a protocol error, not a
// NeedData wait — no more bytes for that datagram are ever coming.
func TestBroadcasterPartialDatagramIsProtocolError(t *testing.T) {
	b := NewBroadcaster(command.SERVER)
	full, err := (&command.EchoRequest{}).Marshal()
	require.NoError(t, err)

	b.Feed(full[:len(full)-4], "10.0.0.1:5065")

	_, _, err = b.NextCommand()
	require.Error(t, err)
	_, isNeedData := err.(*framer.NeedData)
	assert.False(t, isNeedData)
}
