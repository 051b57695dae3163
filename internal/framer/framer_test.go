package framer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulaginds/caproto-go/internal/command"
)

func TestParseExactly16BytesNoPayload(t *testing.T) {
	req := &command.VersionRequest{Priority: 0, Version: 13}
	buf, err := req.Marshal()
	require.NoError(t, err)
	require.Len(t, buf, 16)

	n, cmd, err := Parse(buf, command.CLIENT)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, req, cmd)
}

func TestParseOneByteShort(t *testing.T) {
	req := &command.VersionRequest{Priority: 0, Version: 13}
	buf, err := req.Marshal()
	require.NoError(t, err)

	_, _, err = Parse(buf[:len(buf)-1], command.CLIENT)
	require.Error(t, err)
	nd, ok := err.(*NeedData)
	require.True(t, ok)
	assert.Equal(t, 1, nd.Bytes)
}

func TestParseOneByteExtra(t *testing.T) {
	req := &command.VersionRequest{Priority: 0, Version: 13}
	buf, err := req.Marshal()
	require.NoError(t, err)
	buf = append(buf, 0xAB)

	n, cmd, err := Parse(buf, command.CLIENT)
	require.NoError(t, err)
	assert.Equal(t, len(buf)-1, n)
	assert.Equal(t, req, cmd)
}

// Scenario E: two commands in one feed, drained by successive Parse calls.
func TestParseTwoCommandsInOneFeed(t *testing.T) {
	versionResp := &command.VersionResponse{Version: 13}
	accessResp := &command.AccessRightsResponse{CID: 1, Rights: command.AccessRead | command.AccessWrite}

	b1, err := versionResp.Marshal()
	require.NoError(t, err)
	b2, err := accessResp.Marshal()
	require.NoError(t, err)

	feed := append(append([]byte{}, b1...), b2...)

	n1, cmd1, err := Parse(feed, command.SERVER)
	require.NoError(t, err)
	assert.Equal(t, versionResp, cmd1)

	n2, cmd2, err := Parse(feed[n1:], command.SERVER)
	require.NoError(t, err)
	assert.Equal(t, accessResp, cmd2)
	assert.Equal(t, len(feed), n1+n2)

	_, _, err = Parse(feed[n1+n2:], command.SERVER)
	require.Error(t, err)
	_, ok := err.(*NeedData)
	assert.True(t, ok)
}

// Scenario F: malformed -- unknown command code.
func TestParseUnknownCommandCode(t *testing.T) {
	buf := make([]byte, 16)
	buf[0] = 0xFF
	buf[1] = 0xFF

	_, _, err := Parse(buf, command.SERVER)
	require.Error(t, err)
	_, isNeedData := err.(*NeedData)
	assert.False(t, isNeedData)
}

func TestParseAllDatagram(t *testing.T) {
	req1 := &command.SearchRequest{Name: "a", CID: 0, Version: 13, Reply: command.NoReply}
	req2 := &command.SearchRequest{Name: "bb", CID: 1, Version: 13, Reply: command.NoReply}
	b1, err := req1.Marshal()
	require.NoError(t, err)
	b2, err := req2.Marshal()
	require.NoError(t, err)
	datagram := append(append([]byte{}, b1...), b2...)

	cmds, err := ParseAll(datagram, command.CLIENT)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, req1, cmds[0])
	assert.Equal(t, req2, cmds[1])
}

func TestParseAllDatagramPartialTrailingCommandIsError(t *testing.T) {
	req := &command.SearchRequest{Name: "a", CID: 0, Version: 13, Reply: command.NoReply}
	b, err := req.Marshal()
	require.NoError(t, err)
	datagram := append(b, make([]byte, 5)...)

	_, err = ParseAll(datagram, command.CLIENT)
	require.Error(t, err)
}

func TestParseNeedDataForShortHeader(t *testing.T) {
	_, _, err := Parse(make([]byte, 10), command.CLIENT)
	require.Error(t, err)
	nd, ok := err.(*NeedData)
	require.True(t, ok)
	assert.Equal(t, 6, nd.Bytes)
}
