package command

import "github.com/kulaginds/caproto-go/internal/wire"

// marshalFrame builds the header, payload, and padding for a single command,
// choosing the standard or extended header form per internal/wire's rule.
func marshalFrame(code Code, dataType uint16, dataCount uint32, p1, p2 uint32, payload []byte) []byte {
	h := wire.Header{
		Command:     uint16(code),
		PayloadSize: uint32(len(payload)),
		DataType:    dataType,
		DataCount:   dataCount,
		Parameter1:  p1,
		Parameter2:  p2,
	}
	buf := h.Encode(nil)
	buf = append(buf, payload...)
	return wire.AppendPadding(buf, len(payload))
}
