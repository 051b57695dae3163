// Package framer turns a byte stream (or a single UDP datagram) into a
// sequence of command.Command values, and nothing else: it does not touch
// sockets, does not retain state about circuits or channels, and performs
// no side effects beyond slicing the buffer it is given.
package framer

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/protoerr"
	"github.com/kulaginds/caproto-go/internal/wire"
)

// NeedData is returned by Parse when buf does not yet hold a complete
// command. Bytes is the minimum number of additional bytes the caller
// should supply before calling Parse again; it is not a hard requirement,
// just the smallest known progress unit.
type NeedData struct {
	Bytes int
}

// Parse implements the algorithm in spec §4.3: it decodes at most one
// command from the front of buf. fromRole identifies which side produced
// buf's bytes (the peer, from the reader's point of view), which the
// command catalog uses to pick a request vs. response shape for codes that
// are shared between directions.
//
// Three outcomes: (n, cmd, nil) on a fully decoded command consuming n
// bytes; (0, nil, *NeedData) when buf is a valid but incomplete prefix; or
// (0, nil, err) when buf's prefix is provably malformed.
func Parse(buf []byte, fromRole command.Role) (int, command.Command, error) {
	h, consumed, err := wire.DecodeHeader(buf)
	if err != nil {
		var needMore *wire.ErrNeedMore
		if isNeedMore(err, &needMore) {
			return 0, nil, &NeedData{Bytes: needMore.Bytes}
		}
		return 0, nil, err
	}

	total := consumed + int(h.PayloadSize) + wire.PadLen(int(h.PayloadSize))
	if len(buf) < total {
		return 0, nil, &NeedData{Bytes: total - len(buf)}
	}

	payload := buf[consumed : consumed+int(h.PayloadSize)]
	cmd, err := command.Decode(fromRole, h, payload)
	if err != nil {
		return 0, nil, err
	}
	return total, cmd, nil
}

func isNeedMore(err error, target **wire.ErrNeedMore) bool {
	if nm, ok := err.(*wire.ErrNeedMore); ok {
		*target = nm
		return true
	}
	return false
}

func (n *NeedData) Error() string {
	return fmt.Sprintf("need %d more byte(s)", n.Bytes)
}

// ParseAll decodes every command in a single UDP datagram. A datagram is
// atomic (spec §4.3): a partial trailing command is a RemoteProtocolError,
// not NeedData, because no more bytes are coming for this datagram.
func ParseAll(datagram []byte, fromRole command.Role) ([]command.Command, error) {
	var commands []command.Command
	offset := 0
	for offset < len(datagram) {
		n, cmd, err := Parse(datagram[offset:], fromRole)
		if err != nil {
			if _, ok := err.(*NeedData); ok {
				return nil, &protoerr.RemoteProtocolError{
					Command: "datagram",
					Role:    fromRole.String(),
					State:   "framing",
					Err:     fmt.Errorf("partial command at end of datagram (%d trailing bytes)", len(datagram)-offset),
				}
			}
			return nil, err
		}
		commands = append(commands, cmd)
		offset += n
	}
	return commands, nil
}
