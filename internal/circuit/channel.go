package circuit

import (
	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/protoerr"
	"github.com/kulaginds/caproto-go/internal/state"
)

// Channel is one named process variable as seen through a single
// VirtualCircuit. Channels never outlive the circuit that owns them; a
// Channel only holds a back-reference, never the reverse arena ownership
// (spec §9).
type Channel struct {
	Name            string
	CID             uint32
	SID             uint32
	Priority        uint16
	NativeDataType  uint16
	NativeDataCount uint32

	OurState   state.ChannelState
	TheirState state.ChannelState

	circuit *VirtualCircuit
}

// NewChannel allocates a channel with a fresh cid on circuit and registers
// it in the circuit's cid map. priority must be in [0, 99].
func NewChannel(circuit *VirtualCircuit, name string, priority uint16) (*Channel, error) {
	if name == "" {
		return nil, &protoerr.ValueError{Field: "Name", Value: name, Message: "channel name must not be empty"}
	}
	if priority > 99 {
		return nil, &protoerr.ValueError{Field: "Priority", Value: priority, Message: "priority must be in [0, 99]"}
	}
	cid, err := circuit.cidCounter.Next(func(id uint32) bool {
		_, live := circuit.channelsByCID[id]
		return live
	})
	if err != nil {
		return nil, err
	}
	ch := &Channel{Name: name, CID: cid, Priority: priority, circuit: circuit}
	circuit.channelsByCID[cid] = ch
	return ch, nil
}

// Circuit returns the VirtualCircuit this channel belongs to.
func (c *Channel) Circuit() *VirtualCircuit { return c.circuit }

// Create builds the CreateChannelRequest for this channel and advances its
// local state machine via the owning circuit.
func (c *Channel) Create(version uint16) (command.Command, error) {
	cmd := &command.CreateChannelRequest{Name: c.Name, CID: c.CID, Version: version}
	if err := c.circuit.sendChannelCommand(c, cmd, state.EventCreateSent); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Read builds a ReadNotifyRequest for this channel's current value,
// allocating a fresh ioid.
func (c *Channel) Read(dataType uint16, dataCount uint32) (command.Command, error) {
	if c.OurState != state.ChannelConnected {
		return nil, &protoerr.LocalProtocolError{
			Command: "ReadNotifyRequest", Role: c.circuit.OurRole.String(), State: c.OurState.String(),
		}
	}
	ioid, err := c.circuit.ioidCounter.Next(func(id uint32) bool {
		_, live := c.circuit.ioidsInFlight[id]
		return live
	})
	if err != nil {
		return nil, err
	}
	cmd := &command.ReadNotifyRequest{DataType: dataType, DataCount: dataCount, SID: c.SID, IOID: ioid}
	c.circuit.ioidsInFlight[ioid] = c
	return cmd, nil
}

// Write builds a WriteNotifyRequest with payload already encoded by the
// caller (internal/dbr), allocating a fresh ioid.
func (c *Channel) Write(dataType uint16, dataCount uint32, payload []byte) (command.Command, error) {
	if c.OurState != state.ChannelConnected {
		return nil, &protoerr.LocalProtocolError{
			Command: "WriteNotifyRequest", Role: c.circuit.OurRole.String(), State: c.OurState.String(),
		}
	}
	ioid, err := c.circuit.ioidCounter.Next(func(id uint32) bool {
		_, live := c.circuit.ioidsInFlight[id]
		return live
	})
	if err != nil {
		return nil, err
	}
	cmd := &command.WriteNotifyRequest{DataType: dataType, DataCount: dataCount, SID: c.SID, IOID: ioid, Payload: payload}
	c.circuit.ioidsInFlight[ioid] = c
	return cmd, nil
}

// Subscribe builds an EventAddRequest, allocating a fresh subscriptionid.
func (c *Channel) Subscribe(dataType uint16, dataCount uint32, mask int32) (command.Command, uint32, error) {
	if c.OurState != state.ChannelConnected {
		return nil, 0, &protoerr.LocalProtocolError{
			Command: "EventAddRequest", Role: c.circuit.OurRole.String(), State: c.OurState.String(),
		}
	}
	subID, err := c.circuit.subscriptionCounter.Next(func(id uint32) bool {
		_, live := c.circuit.subscriptionsInFlight[id]
		return live
	})
	if err != nil {
		return nil, 0, err
	}
	cmd := &command.EventAddRequest{DataType: dataType, DataCount: dataCount, SID: c.SID, SubscriptionID: subID, Mask: mask}
	c.circuit.subscriptionsInFlight[subID] = c
	return cmd, subID, nil
}

// Unsubscribe builds an EventCancelRequest for a subscription created by
// Subscribe.
func (c *Channel) Unsubscribe(dataType uint16, subID uint32) (command.Command, error) {
	if _, live := c.circuit.subscriptionsInFlight[subID]; !live {
		return nil, &protoerr.KeyError{Kind: "subscriptionid", Key: subID}
	}
	return &command.EventCancelRequest{DataType: dataType, SID: c.SID, SubscriptionID: subID}, nil
}

// Clear builds a ClearChannelRequest that tears this channel down.
func (c *Channel) Clear() (command.Command, error) {
	cmd := &command.ClearChannelRequest{SID: c.SID, CID: c.CID}
	if err := c.circuit.sendChannelCommand(c, cmd, state.EventClearSent); err != nil {
		return nil, err
	}
	return cmd, nil
}
