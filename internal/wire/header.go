// Package wire implements the fixed-layout Channel Access header formats and
// the byte-order/padding rules shared by every command in internal/command.
//
// All multi-byte integers on the wire are big-endian (spec §4.1). DecodeHeader
// reads a header field by field from a byte slice with encoding/binary rather
// than through an unsafe struct overlay, so the extended-header sentinel can
// be detected before deciding how many more bytes are needed; WriteHeader is
// an io.Writer form of Encode.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// HeaderSize is the length in bytes of the standard 16-byte header.
	HeaderSize = 16
	// ExtendedHeaderSize is the length in bytes of the extended 24-byte
	// header, used when payload_size or data_count would not fit in 16 bits.
	ExtendedHeaderSize = 24

	// extendedSentinelPayloadSize and extendedSentinelDataCount are the
	// values the standard header's payload_size/data_count fields carry when
	// the real values follow in an 8-byte extension.
	extendedSentinelPayloadSize = 0xFFFF
	extendedSentinelDataCount   = 0
)

// Header is the logical content of a Channel Access command header,
// independent of whether it was encoded in standard or extended form.
type Header struct {
	Command      uint16
	PayloadSize  uint32
	DataType     uint16
	DataCount    uint32
	Parameter1   uint32
	Parameter2   uint32
}

// Extended reports whether h requires the 24-byte extended encoding because
// either PayloadSize or DataCount does not fit in 16 bits.
func (h Header) Extended() bool {
	return h.PayloadSize > 0xFFFF || h.DataCount > 0xFFFF
}

// Size returns the number of header bytes h will occupy on the wire.
func (h Header) Size() int {
	if h.Extended() {
		return ExtendedHeaderSize
	}
	return HeaderSize
}

// Encode appends h's wire representation to dst and returns the result.
func (h Header) Encode(dst []byte) []byte {
	var buf [ExtendedHeaderSize]byte
	if h.Extended() {
		binary.BigEndian.PutUint16(buf[0:2], h.Command)
		binary.BigEndian.PutUint16(buf[2:4], extendedSentinelPayloadSize)
		binary.BigEndian.PutUint16(buf[4:6], h.DataType)
		binary.BigEndian.PutUint16(buf[6:8], extendedSentinelDataCount)
		binary.BigEndian.PutUint32(buf[8:12], h.Parameter1)
		binary.BigEndian.PutUint32(buf[12:16], h.Parameter2)
		binary.BigEndian.PutUint32(buf[16:20], h.PayloadSize)
		binary.BigEndian.PutUint32(buf[20:24], h.DataCount)
		return append(dst, buf[:ExtendedHeaderSize]...)
	}
	binary.BigEndian.PutUint16(buf[0:2], h.Command)
	binary.BigEndian.PutUint16(buf[2:4], uint16(h.PayloadSize))
	binary.BigEndian.PutUint16(buf[4:6], h.DataType)
	binary.BigEndian.PutUint16(buf[6:8], uint16(h.DataCount))
	binary.BigEndian.PutUint32(buf[8:12], h.Parameter1)
	binary.BigEndian.PutUint32(buf[12:16], h.Parameter2)
	return append(dst, buf[:HeaderSize]...)
}

// DecodeHeader parses a header from the front of buf. It returns the
// decoded header and the number of bytes consumed. If buf does not yet hold
// a complete header, it returns ErrNeedMore with the number of additional
// bytes required.
func DecodeHeader(buf []byte) (Header, int, error) {
	if len(buf) < HeaderSize {
		return Header{}, 0, &ErrNeedMore{Bytes: HeaderSize - len(buf)}
	}

	var h Header
	h.Command = binary.BigEndian.Uint16(buf[0:2])
	standardPayloadSize := binary.BigEndian.Uint16(buf[2:4])
	h.DataType = binary.BigEndian.Uint16(buf[4:6])
	standardDataCount := binary.BigEndian.Uint16(buf[6:8])
	h.Parameter1 = binary.BigEndian.Uint32(buf[8:12])
	h.Parameter2 = binary.BigEndian.Uint32(buf[12:16])

	if standardPayloadSize == extendedSentinelPayloadSize && standardDataCount == extendedSentinelDataCount {
		if len(buf) < ExtendedHeaderSize {
			return Header{}, 0, &ErrNeedMore{Bytes: ExtendedHeaderSize - len(buf)}
		}
		h.PayloadSize = binary.BigEndian.Uint32(buf[16:20])
		h.DataCount = binary.BigEndian.Uint32(buf[20:24])
		return h, ExtendedHeaderSize, nil
	}

	h.PayloadSize = uint32(standardPayloadSize)
	h.DataCount = uint32(standardDataCount)
	return h, HeaderSize, nil
}

// ErrNeedMore is returned by DecodeHeader (and surfaced through
// internal/framer) when buf does not yet hold enough bytes to make progress.
type ErrNeedMore struct {
	Bytes int
}

func (e *ErrNeedMore) Error() string {
	return fmt.Sprintf("need %d more byte(s)", e.Bytes)
}

// PadLen returns the number of zero bytes needed to round n up to the next
// multiple of 8, per the payload padding rule in spec §4.1.
func PadLen(n int) int {
	rem := n % 8
	if rem == 0 {
		return 0
	}
	return 8 - rem
}

// AppendPadding appends PadLen(n) zero bytes to dst.
func AppendPadding(dst []byte, n int) []byte {
	pad := PadLen(n)
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst
}

// WriteHeader writes h's wire form to w, matching the io.Writer-based style
// used throughout the teacher's encoding helpers.
func WriteHeader(w io.Writer, h Header) error {
	buf := h.Encode(nil)
	_, err := w.Write(buf)
	return err
}
