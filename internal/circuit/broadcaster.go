package circuit

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/framer"
	"github.com/kulaginds/caproto-go/internal/logging"
	"github.com/kulaginds/caproto-go/internal/metrics"
	"github.com/kulaginds/caproto-go/internal/protoerr"
)

// Broadcaster is the UDP-side analog of a VirtualCircuit (spec §3, §4.5): it
// owns the search-id bookkeeping and the queue of received datagrams,
// exposing the same send/feed/next_command shape over a transport where one
// feed call corresponds to one whole UDP payload rather than a byte stream.
type Broadcaster struct {
	ID      xid.ID
	OurRole command.Role

	Log     *logging.Logger
	Metrics *metrics.Recorder

	unansweredSearches map[uint32]string

	searchIDCounter *IDCounter
	sequenceID      uint32

	queue []*datagram
}

type datagram struct {
	senderAddr string
	buf        []byte
}

// NewBroadcaster builds a Broadcaster for the given local role.
func NewBroadcaster(ourRole command.Role) *Broadcaster {
	b := &Broadcaster{
		ID:                 xid.New(),
		OurRole:            ourRole,
		unansweredSearches: make(map[uint32]string),
		searchIDCounter:    NewIDCounter("searchid"),
	}
	b.searchIDCounter.OnWrap = func() { b.Metrics.RecordIDWrap("searchid") }
	return b
}

func (b *Broadcaster) theirRole() command.Role {
	if b.OurRole == command.CLIENT {
		return command.SERVER
	}
	return command.CLIENT
}

// NextSequenceID returns the next beacon/packet sequence number a host may
// stamp on an outgoing datagram; it never wraps against liveness since
// sequence numbers, unlike cid/sid/ioid, are not correlated back to a map.
func (b *Broadcaster) NextSequenceID() uint32 {
	id := b.sequenceID
	b.sequenceID++
	return id
}

// Search allocates a fresh search-id (shared with the eventual channel's
// cid) for every name in names, remembers each as unanswered, and returns
// the name->id mapping plus the SearchRequest commands ready to be handed to
// Send. A VersionRequest is not included: per spec §6 it always precedes a
// circuit's first TCP message, but a UDP search datagram is commonly sent
// standalone; callers that want one prepend command.VersionRequest
// themselves.
func (b *Broadcaster) Search(names []string) (map[string]uint32, []command.Command, error) {
	ids := make(map[string]uint32, len(names))
	cmds := make([]command.Command, 0, len(names))
	for _, name := range names {
		id, err := b.searchIDCounter.Next(func(candidate uint32) bool {
			_, live := b.unansweredSearches[candidate]
			return live
		})
		if err != nil {
			return nil, nil, err
		}
		b.unansweredSearches[id] = name
		ids[name] = id
		cmds = append(cmds, &command.SearchRequest{Name: name, CID: id, Version: command.MinimumVersion, Reply: command.DoReply})
	}
	return ids, cmds, nil
}

// Send concatenates the wire bytes of every command into a single UDP
// datagram, in order. It performs no I/O and no state-machine validation:
// unlike VirtualCircuit's stream of typed request/response commands, every
// Broadcaster command is legal in any order (search, beacon, and repeater
// traffic have no lifecycle coupling beyond the unanswered-searches map
// Search itself maintains).
func (b *Broadcaster) Send(cmds ...command.Command) ([]byte, error) {
	var out []byte
	for _, cmd := range cmds {
		buf, err := cmd.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, buf...)
		b.Metrics.RecordCommandSent(cmd.CommandCode().String())
		if b.Log != nil {
			b.Log.Debug("-> %s", cmd)
		}
	}
	return out, nil
}

// Feed queues one complete UDP datagram, received from senderAddr, for later
// decoding by NextCommand. It copies data so the caller may reuse its
// buffer.
func (b *Broadcaster) Feed(data []byte, senderAddr string) {
	cp := make([]byte, len(data))
	copy(cp, data)
	b.queue = append(b.queue, &datagram{senderAddr: senderAddr, buf: cp})
}

// NextCommand decodes the next command from the oldest queued datagram,
// returning its sender address alongside it. Commands from one datagram are
// yielded in on-wire order; once a datagram is exhausted its successor (a
// later Feed call, regardless of sender) becomes current. A would-be partial
// command at the end of a datagram is a RemoteProtocolError, since a
// datagram is atomic and no more bytes for it are ever coming (spec §4.3).
func (b *Broadcaster) NextCommand() (command.Command, string, error) {
	for len(b.queue) > 0 {
		d := b.queue[0]
		if len(d.buf) == 0 {
			b.queue = b.queue[1:]
			continue
		}

		n, cmd, err := framer.Parse(d.buf, b.theirRole())
		if err != nil {
			if nd, ok := err.(*framer.NeedData); ok {
				b.queue = b.queue[1:]
				b.Metrics.RecordProtocolError("remote")
				return nil, "", &protoerr.RemoteProtocolError{
					Command: "datagram", Role: b.theirRole().String(), State: "framing",
					Err: fmt.Errorf("partial command at end of datagram (%d bytes missing)", nd.Bytes),
				}
			}
			b.Metrics.RecordProtocolError("remote")
			return nil, "", err
		}

		d.buf = d.buf[n:]
		if len(d.buf) == 0 {
			b.queue = b.queue[1:]
		}

		if err := b.applyRecvSideEffects(cmd); err != nil {
			return nil, "", err
		}
		if b.Log != nil {
			b.Log.Debug("<- %s (from %s)", cmd, d.senderAddr)
		}
		b.Metrics.RecordCommandReceived(cmd.CommandCode().String())
		return cmd, d.senderAddr, nil
	}
	return nil, "", &framer.NeedData{Bytes: 1}
}

func (b *Broadcaster) applyRecvSideEffects(cmd command.Command) error {
	switch v := cmd.(type) {
	case *command.SearchResponse:
		delete(b.unansweredSearches, v.CID)
	case *command.NotFoundResponse:
		// Left unanswered; the caller is expected to retry the search.
		_ = v
	}
	return nil
}

// Unanswered returns the PV name still awaiting a SearchResponse for id, if
// any.
func (b *Broadcaster) Unanswered(id uint32) (string, bool) {
	name, ok := b.unansweredSearches[id]
	return name, ok
}
