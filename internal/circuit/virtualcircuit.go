package circuit

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/framer"
	"github.com/kulaginds/caproto-go/internal/logging"
	"github.com/kulaginds/caproto-go/internal/metrics"
	"github.com/kulaginds/caproto-go/internal/protoerr"
	"github.com/kulaginds/caproto-go/internal/state"
)

// VirtualCircuit is a TCP connection to one peer at a fixed priority (spec
// §3, §4.5). It owns the receive buffer, the channel registries, the
// in-flight request maps, and the id counters for one (host, port,
// priority) triple. It performs no socket I/O: Feed appends bytes a host
// application already read off the wire, and Send returns bytes the host
// must write.
type VirtualCircuit struct {
	ID       xid.ID
	OurRole  command.Role
	Host     string
	Port     uint16
	Priority uint16

	OurState   state.CircuitState
	TheirState state.CircuitState

	// Log and Metrics are nil-safe optional observers; the circuit never
	// requires them and never chooses a destination for them (spec §5, §7).
	Log     *logging.Logger
	Metrics *metrics.Recorder

	channelsByCID         map[uint32]*Channel
	channelsBySID         map[uint32]*Channel
	ioidsInFlight         map[uint32]*Channel
	subscriptionsInFlight map[uint32]*Channel
	subscriptionRequests  map[uint32]*command.EventAddRequest

	cidCounter          *IDCounter
	sidCounter          *IDCounter
	ioidCounter         *IDCounter
	subscriptionCounter *IDCounter

	recvBuf []byte

	// echoOutstanding tracks whether a locally-sent EchoRequest has not yet
	// been answered; a caller-supplied timeout turns this into
	// EventEchoTimeout (spec §4.4: the clock itself belongs to the host).
	echoOutstanding bool
}

// NewVirtualCircuit builds a circuit in its initial INIT/INIT state for a
// peer at (host, port) with the given priority, which must be in [0, 99].
func NewVirtualCircuit(ourRole command.Role, host string, port uint16, priority uint16) (*VirtualCircuit, error) {
	if priority > 99 {
		return nil, &protoerr.ValueError{Field: "Priority", Value: priority, Message: "priority must be in [0, 99]"}
	}
	c := &VirtualCircuit{
		ID:                    xid.New(),
		OurRole:               ourRole,
		Host:                  host,
		Port:                  port,
		Priority:              priority,
		channelsByCID:         make(map[uint32]*Channel),
		channelsBySID:         make(map[uint32]*Channel),
		ioidsInFlight:         make(map[uint32]*Channel),
		subscriptionsInFlight: make(map[uint32]*Channel),
		subscriptionRequests:  make(map[uint32]*command.EventAddRequest),
		cidCounter:            NewIDCounter("cid"),
		sidCounter:            NewIDCounter("sid"),
		ioidCounter:           NewIDCounter("ioid"),
		subscriptionCounter:   NewIDCounter("subscriptionid"),
	}
	c.cidCounter.OnWrap = func() { c.Metrics.RecordIDWrap("cid") }
	c.sidCounter.OnWrap = func() { c.Metrics.RecordIDWrap("sid") }
	c.ioidCounter.OnWrap = func() { c.Metrics.RecordIDWrap("ioid") }
	c.subscriptionCounter.OnWrap = func() { c.Metrics.RecordIDWrap("subscriptionid") }
	return c, nil
}

// theirRole is the peer's role, used by internal/framer to pick the correct
// request/response shape for codes shared between directions.
func (c *VirtualCircuit) theirRole() command.Role {
	if c.OurRole == command.CLIENT {
		return command.SERVER
	}
	return command.CLIENT
}

// ChannelByCID looks up a channel registered on this circuit by its cid.
func (c *VirtualCircuit) ChannelByCID(cid uint32) (*Channel, bool) {
	ch, ok := c.channelsByCID[cid]
	return ch, ok
}

// ChannelBySID looks up a channel registered on this circuit by its sid.
func (c *VirtualCircuit) ChannelBySID(sid uint32) (*Channel, bool) {
	ch, ok := c.channelsBySID[sid]
	return ch, ok
}

// Send applies the circuit-level transition cmd implies (see
// applySendSideEffects) and returns the wire bytes to transmit. It does not
// check channel state: the channel-level transition for CreateChannelRequest
// and ClearChannelRequest is applied when Channel.Create/Channel.Clear build
// the command. It performs no I/O (spec §4.5).
func (c *VirtualCircuit) Send(cmd command.Command) ([]byte, error) {
	if err := c.applySendSideEffects(cmd); err != nil {
		return nil, err
	}
	buf, err := cmd.Marshal()
	if err != nil {
		return nil, err
	}
	c.logDebug("-> %s", cmd)
	c.Metrics.RecordCommandSent(cmd.CommandCode().String())
	return buf, nil
}

// applySendSideEffects performs the circuit-level state transition implied
// by sending cmd. Channel-level transitions for CreateChannelRequest and
// ClearChannelRequest are applied earlier, when Channel.Create/Channel.Clear
// built cmd (see sendChannelCommand); this step only handles commands with
// no natural Channel owner.
func (c *VirtualCircuit) applySendSideEffects(cmd command.Command) error {
	switch v := cmd.(type) {
	case *command.VersionRequest:
		return c.advanceCircuitOur(state.EventVersionExchanged)
	case *command.VersionResponse:
		return c.advanceCircuitOur(state.EventVersionExchanged)
	case *command.EchoRequest:
		if c.OurState != state.CircuitConnected && c.OurState != state.CircuitResponsive && c.OurState != state.CircuitUnresponsive {
			c.Metrics.RecordProtocolError("local")
			return &protoerr.LocalProtocolError{Command: "EchoRequest", Role: c.OurRole.String(), State: c.OurState.String()}
		}
		c.echoOutstanding = true
		return nil
	case *command.EchoResponse:
		return nil
	case *command.ClearChannelRequest:
		// Already transitioned by Channel.Clear via sendChannelCommand;
		// nothing left to validate.
		_ = v
		return nil
	default:
		return nil
	}
}

// sendChannelCommand is called by Channel's convenience constructors
// (Create, Clear) to validate and apply the channel-state transition that
// sending cmd implies, before the caller serializes it with Send.
func (c *VirtualCircuit) sendChannelCommand(ch *Channel, cmd command.Command, event state.ChannelEvent) error {
	nextOur, ok := state.AdvanceChannel(ch.OurState, event, c.OurState)
	if !ok {
		c.Metrics.RecordProtocolError("local")
		return &protoerr.LocalProtocolError{
			Command: cmd.CommandCode().String(), Role: c.OurRole.String(), State: ch.OurState.String(),
		}
	}
	nextTheir, _ := state.AdvanceChannel(ch.TheirState, event, c.TheirState)
	ch.OurState = nextOur
	ch.TheirState = nextTheir
	return nil
}

// Feed appends newly-received bytes to the circuit's receive buffer. It
// performs no parsing; call NextCommand to drain the buffer.
func (c *VirtualCircuit) Feed(b []byte) {
	c.recvBuf = append(c.recvBuf, b...)
}

// NextCommand decodes the next complete command from the receive buffer,
// advancing the relevant state machine(s) and applying the side effects a
// received command implies. It returns *framer.NeedData when the buffer
// holds only a partial command.
func (c *VirtualCircuit) NextCommand() (command.Command, error) {
	n, cmd, err := framer.Parse(c.recvBuf, c.theirRole())
	if err != nil {
		return nil, err
	}
	c.recvBuf = c.recvBuf[n:]

	if err := c.applyRecvSideEffects(cmd); err != nil {
		return nil, err
	}
	c.logDebug("<- %s", cmd)
	c.Metrics.RecordCommandReceived(cmd.CommandCode().String())
	return cmd, nil
}

func (c *VirtualCircuit) applyRecvSideEffects(cmd command.Command) error {
	switch v := cmd.(type) {
	case *command.VersionRequest:
		return c.advanceCircuitTheir(state.EventVersionExchanged)
	case *command.VersionResponse:
		return c.advanceCircuitTheir(state.EventVersionExchanged)

	case *command.EchoResponse:
		c.echoOutstanding = false
		return c.advanceCircuitOur(state.EventEchoResponse)

	case *command.CreateChannelRequest:
		return c.recvCreateChannelRequest(v)
	case *command.CreateChannelResponse:
		return c.recvCreateChannelResponse(v)
	case *command.CreateChannelFailureResponse:
		return c.recvChannelEventByCID(v.CID, state.EventCreateFailureReceived, "CreateChannelFailureResponse")

	case *command.ClearChannelRequest:
		return c.recvChannelEventBySID(v.SID, v.CID, state.EventClearSent, "ClearChannelRequest")
	case *command.ClearChannelResponse:
		return c.recvClearChannelResponse(v)

	case *command.ServerDisconnResponse:
		return c.recvServerDisconn(v)

	case *command.ReadNotifyResponse:
		return c.recvReadNotifyResponse(v)
	case *command.WriteNotifyResponse:
		return c.recvWriteNotifyResponse(v)
	case *command.EventAddResponse:
		return nil // subscription stays live; ioid/subscription bookkeeping already done at Subscribe time
	case *command.EventCancelResponse:
		return c.recvEventCancelResponse(v)

	case *command.ErrorResponse:
		return c.recvErrorResponse(v)

	default:
		return nil
	}
}

// advanceCircuitOur and advanceCircuitTheir each move one side's sub-state
// independently (spec §2 item 4): OurState reflects this role's own
// handshake/liveness progress, TheirState reflects what the peer has told us
// about theirs. A command only ever drives one side — sending a
// VersionRequest says nothing about the peer's state until its
// VersionResponse is actually received.
func (c *VirtualCircuit) advanceCircuitOur(event state.CircuitEvent) error {
	next, ok := state.AdvanceCircuit(c.OurState, event)
	if !ok {
		c.Metrics.RecordProtocolError("local")
		return &protoerr.LocalProtocolError{Command: event.String(), Role: c.OurRole.String(), State: c.OurState.String()}
	}
	c.OurState = next
	return nil
}

func (c *VirtualCircuit) advanceCircuitTheir(event state.CircuitEvent) error {
	next, ok := state.AdvanceCircuit(c.TheirState, event)
	if !ok {
		c.Metrics.RecordProtocolError("remote")
		return &protoerr.RemoteProtocolError{Command: event.String(), Role: c.theirRole().String(), State: c.TheirState.String()}
	}
	c.TheirState = next
	return nil
}

// NotifyEchoTimeout tells the circuit that a locally-sent EchoRequest went
// unanswered past the host's deadline (spec §4.4: the clock belongs to the
// host, not the engine), moving OurState to UNRESPONSIVE.
func (c *VirtualCircuit) NotifyEchoTimeout() error {
	if !c.echoOutstanding {
		return nil
	}
	return c.advanceCircuitOur(state.EventEchoTimeout)
}

func (c *VirtualCircuit) recvCreateChannelRequest(req *command.CreateChannelRequest) error {
	ch, ok := c.channelsByCID[req.CID]
	if !ok {
		ch = &Channel{Name: req.Name, CID: req.CID}
		c.bindChannel(ch)
	}
	nextTheir, ok := state.AdvanceChannel(ch.TheirState, state.EventCreateSent, c.TheirState)
	if !ok {
		return &protoerr.RemoteProtocolError{Command: "CreateChannelRequest", Role: c.theirRole().String(), State: ch.TheirState.String()}
	}
	ch.TheirState = nextTheir
	return nil
}

func (c *VirtualCircuit) recvCreateChannelResponse(resp *command.CreateChannelResponse) error {
	ch, ok := c.channelsByCID[resp.CID]
	if !ok {
		return &protoerr.KeyError{Kind: "cid", Key: resp.CID}
	}
	nextTheir, ok := state.AdvanceChannel(ch.TheirState, state.EventCreateResponseReceived, c.TheirState)
	if !ok {
		return &protoerr.RemoteProtocolError{Command: "CreateChannelResponse", Role: c.theirRole().String(), State: ch.TheirState.String()}
	}
	ch.TheirState = nextTheir
	ch.SID = resp.SID
	ch.NativeDataType = resp.DataType
	ch.NativeDataCount = resp.DataCount
	c.channelsBySID[resp.SID] = ch
	return nil
}

func (c *VirtualCircuit) recvChannelEventByCID(cid uint32, event state.ChannelEvent, name string) error {
	ch, ok := c.channelsByCID[cid]
	if !ok {
		return &protoerr.KeyError{Kind: "cid", Key: cid}
	}
	nextTheir, ok := state.AdvanceChannel(ch.TheirState, event, c.TheirState)
	if !ok {
		return &protoerr.RemoteProtocolError{Command: name, Role: c.theirRole().String(), State: ch.TheirState.String()}
	}
	ch.TheirState = nextTheir
	return nil
}

func (c *VirtualCircuit) recvChannelEventBySID(sid, cid uint32, event state.ChannelEvent, name string) error {
	ch, ok := c.channelsBySID[sid]
	if !ok {
		ch, ok = c.channelsByCID[cid]
	}
	if !ok {
		return &protoerr.KeyError{Kind: "sid", Key: sid}
	}
	nextTheir, ok := state.AdvanceChannel(ch.TheirState, event, c.TheirState)
	if !ok {
		return &protoerr.RemoteProtocolError{Command: name, Role: c.theirRole().String(), State: ch.TheirState.String()}
	}
	ch.TheirState = nextTheir
	return nil
}

func (c *VirtualCircuit) recvClearChannelResponse(resp *command.ClearChannelResponse) error {
	if err := c.recvChannelEventBySID(resp.SID, resp.CID, state.EventClearResponseReceived, "ClearChannelResponse"); err != nil {
		return err
	}
	c.destroyChannel(resp.CID, resp.SID)
	return nil
}

func (c *VirtualCircuit) recvServerDisconn(resp *command.ServerDisconnResponse) error {
	ch, ok := c.channelsByCID[resp.CID]
	if !ok {
		return &protoerr.KeyError{Kind: "cid", Key: resp.CID}
	}
	nextOur, okOur := state.AdvanceChannel(ch.OurState, state.EventServerDisconnReceived, c.OurState)
	nextTheir, okTheir := state.AdvanceChannel(ch.TheirState, state.EventServerDisconnReceived, c.TheirState)
	if !okOur || !okTheir {
		return &protoerr.RemoteProtocolError{Command: "ServerDisconn", Role: c.theirRole().String(), State: ch.TheirState.String()}
	}
	ch.OurState = nextOur
	ch.TheirState = nextTheir
	return nil
}

func (c *VirtualCircuit) recvReadNotifyResponse(resp *command.ReadNotifyResponse) error {
	if _, ok := c.ioidsInFlight[resp.IOID]; !ok {
		return &protoerr.KeyError{Kind: "ioid", Key: resp.IOID}
	}
	delete(c.ioidsInFlight, resp.IOID)
	return nil
}

func (c *VirtualCircuit) recvWriteNotifyResponse(resp *command.WriteNotifyResponse) error {
	if _, ok := c.ioidsInFlight[resp.IOID]; !ok {
		return &protoerr.KeyError{Kind: "ioid", Key: resp.IOID}
	}
	delete(c.ioidsInFlight, resp.IOID)
	return nil
}

func (c *VirtualCircuit) recvEventCancelResponse(resp *command.EventCancelResponse) error {
	if _, ok := c.subscriptionsInFlight[resp.SubscriptionID]; !ok {
		return &protoerr.KeyError{Kind: "subscriptionid", Key: resp.SubscriptionID}
	}
	delete(c.subscriptionsInFlight, resp.SubscriptionID)
	delete(c.subscriptionRequests, resp.SubscriptionID)
	return nil
}

// recvErrorResponse surfaces protoerr.ErrorResponseReceived, per spec §7: the
// server's ERROR_RESPONSE is routine, so the circuit stays usable but the
// named ioid is released.
func (c *VirtualCircuit) recvErrorResponse(resp *command.ErrorResponse) error {
	var ioid uint32
	if h, _, err := headerOf(resp.OriginalRequest); err == nil {
		ioid = h
		delete(c.ioidsInFlight, ioid)
	}
	return &protoerr.ErrorResponseReceived{StatusCode: resp.StatusCode, Message: resp.Message, IOID: ioid}
}

// headerOf extracts parameter2 (the ioid slot for every notify-family
// command) from a raw original-request header, best-effort.
func headerOf(raw []byte) (uint32, int, error) {
	if len(raw) < 16 {
		return 0, 0, fmt.Errorf("original request too short")
	}
	return uint32(raw[12])<<24 | uint32(raw[13])<<16 | uint32(raw[14])<<8 | uint32(raw[15]), 16, nil
}

// bindChannel registers ch in the circuit's cid map and sets its
// back-reference. It is called once per channel, either by
// Registry.BindChannel (the client path, for a channel created before its
// circuit was known) or by recvCreateChannelRequest (the server path, where
// the client's cid arrives unannounced). NewChannel registers its channel
// directly.
func (c *VirtualCircuit) bindChannel(ch *Channel) {
	ch.circuit = c
	c.channelsByCID[ch.CID] = ch
}

func (c *VirtualCircuit) destroyChannel(cid, sid uint32) {
	delete(c.channelsByCID, cid)
	delete(c.channelsBySID, sid)
}

func (c *VirtualCircuit) logDebug(format string, args ...interface{}) {
	if c.Log == nil {
		return
	}
	c.Log.Debug(format, args...)
}
