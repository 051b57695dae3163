package dbr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalInt(t *testing.T) {
	in := &Int{Value: -7}
	b, err := Marshal(in)
	require.NoError(t, err)
	assert.Len(t, b, 2)

	var out Int
	require.NoError(t, Unmarshal(b, &out))
	assert.Equal(t, *in, out)
}

func TestMarshalUnmarshalTimeDouble(t *testing.T) {
	in := &TimeDouble{
		Status:   0,
		Severity: 1,
		Stamp:    TimeStamp{SecondsSinceEpoch: 1234, NanoSeconds: 5678},
		Value:    3.14159,
	}
	b, err := Marshal(in)
	require.NoError(t, err)

	size, err := Sizeof(in)
	require.NoError(t, err)
	assert.Len(t, b, size)

	var out TimeDouble
	require.NoError(t, Unmarshal(b, &out))
	assert.Equal(t, *in, out)
}

func TestMarshalUnmarshalCtrlEnum(t *testing.T) {
	in := &CtrlEnum{Status: 0, Severity: 0, NoStr: 2, Value: 1}
	copy(in.Strs[:], "Off")
	copy(in.Strs[MaxEnumStateSize:], "On")

	b, err := Marshal(in)
	require.NoError(t, err)

	var out CtrlEnum
	require.NoError(t, Unmarshal(b, &out))
	assert.Equal(t, *in, out)
}

func TestMarshalArrayRoundTrip(t *testing.T) {
	values := []int32{1, 2, 3, 4}
	b, err := MarshalArray(values)
	require.NoError(t, err)
	assert.Len(t, b, 16)

	out := make([]int32, 4)
	require.NoError(t, UnmarshalArray(b, &out))
	assert.Equal(t, values, out)
}

func TestElementSize(t *testing.T) {
	n, err := ElementSize(DOUBLE)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = ElementSize(Type(21))
	assert.Error(t, err)
}

func TestNewUnimplemented(t *testing.T) {
	_, err := New(Type(28))
	assert.Error(t, err)
}

func TestNewKnownTypes(t *testing.T) {
	for _, id := range []Type{STRING, INT, FLOAT, ENUM, CHAR, LONG, DOUBLE,
		STS_STRING, STS_INT, STS_FLOAT, STS_ENUM, STS_CHAR, STS_LONG, STS_DOUBLE,
		TIME_STRING, TIME_INT, TIME_FLOAT, TIME_ENUM, TIME_CHAR, TIME_LONG, TIME_DOUBLE,
		GR_INT, GR_FLOAT, GR_ENUM, GR_CHAR, GR_LONG, GR_DOUBLE,
		CTRL_INT, CTRL_FLOAT, CTRL_ENUM, CTRL_CHAR, CTRL_LONG, CTRL_DOUBLE,
		PUT_ACKT, PUT_ACKS, STSACK_STRING, CLASS_NAME} {
		v, err := New(id)
		require.NoError(t, err, "id=%v", id)
		assert.NotNil(t, v)
	}
}

func TestUnimplementedIDs(t *testing.T) {
	assert.True(t, Unimplemented(21))
	assert.True(t, Unimplemented(28))
	assert.False(t, Unimplemented(INT))
}
