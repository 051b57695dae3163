package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTripStandard(t *testing.T) {
	h := Header{
		Command:     1,
		PayloadSize: 16,
		DataType:    0,
		DataCount:   1,
		Parameter1:  10,
		Parameter2:  0,
	}

	buf := h.Encode(nil)
	assert.Len(t, buf, HeaderSize)

	got, consumed, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, HeaderSize, consumed)
	assert.Equal(t, h, got)
}

func TestHeaderRoundTripExtended(t *testing.T) {
	h := Header{
		Command:     17,
		PayloadSize: 70000,
		DataType:    6,
		DataCount:   100000,
		Parameter1:  7,
		Parameter2:  42,
	}

	buf := h.Encode(nil)
	assert.Len(t, buf, ExtendedHeaderSize)
	assert.Equal(t, byte(0xFF), buf[2])
	assert.Equal(t, byte(0xFF), buf[3])
	assert.Equal(t, byte(0), buf[6])
	assert.Equal(t, byte(0), buf[7])

	got, consumed, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, ExtendedHeaderSize, consumed)
	assert.Equal(t, h, got)
}

func TestDecodeHeaderNeedsMoreStandard(t *testing.T) {
	buf := make([]byte, 10)
	_, _, err := DecodeHeader(buf)
	require.Error(t, err)

	var needMore *ErrNeedMore
	require.ErrorAs(t, err, &needMore)
	assert.Equal(t, HeaderSize-10, needMore.Bytes)
}

func TestDecodeHeaderNeedsMoreExtended(t *testing.T) {
	h := Header{Command: 1, PayloadSize: 70000, DataCount: 1}
	full := h.Encode(nil)

	_, _, err := DecodeHeader(full[:HeaderSize])
	require.Error(t, err)

	var needMore *ErrNeedMore
	require.ErrorAs(t, err, &needMore)
	assert.Equal(t, ExtendedHeaderSize-HeaderSize, needMore.Bytes)
}

func TestPadLen(t *testing.T) {
	cases := map[int]int{
		0:  0,
		1:  7,
		7:  1,
		8:  0,
		9:  7,
		16: 0,
	}
	for n, want := range cases {
		assert.Equal(t, want, PadLen(n), "n=%d", n)
	}
}

func TestAppendPadding(t *testing.T) {
	buf := AppendPadding([]byte("abc"), 3)
	assert.Len(t, buf, 3+PadLen(3))
	for _, b := range buf[3:] {
		assert.Equal(t, byte(0), b)
	}
}
