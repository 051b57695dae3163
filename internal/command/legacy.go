package command

import "github.com/kulaginds/caproto-go/internal/wire"

// EventsOffRequest and EventsOnRequest are the legacy global flow-control
// pair: a client could ask a server to pause (and later resume) all
// EventAdd delivery on a circuit without canceling individual subscriptions.
// Rarely used by modern peers but kept for catalog completeness.
type EventsOffRequest struct{}

func (e *EventsOffRequest) CommandCode() Code        { return CodeEventsOff }
func (e *EventsOffRequest) String() string           { return "EventsOffRequest()" }
func (e *EventsOffRequest) Marshal() ([]byte, error) { return marshalFrame(CodeEventsOff, 0, 0, 0, 0, nil), nil }

func DecodeEventsOffRequest(wire.Header) (*EventsOffRequest, error) { return &EventsOffRequest{}, nil }

type EventsOnRequest struct{}

func (e *EventsOnRequest) CommandCode() Code        { return CodeEventsOn }
func (e *EventsOnRequest) String() string           { return "EventsOnRequest()" }
func (e *EventsOnRequest) Marshal() ([]byte, error) { return marshalFrame(CodeEventsOn, 0, 0, 0, 0, nil), nil }

func DecodeEventsOnRequest(wire.Header) (*EventsOnRequest, error) { return &EventsOnRequest{}, nil }

// ReadSyncRequest is a legacy synchronization barrier from the original
// (non-notify) read path; kept only so a peer sending it is recognized
// rather than rejected as an unknown command.
type ReadSyncRequest struct{}

func (r *ReadSyncRequest) CommandCode() Code        { return CodeReadSync }
func (r *ReadSyncRequest) String() string           { return "ReadSyncRequest()" }
func (r *ReadSyncRequest) Marshal() ([]byte, error) { return marshalFrame(CodeReadSync, 0, 0, 0, 0, nil), nil }

func DecodeReadSyncRequest(wire.Header) (*ReadSyncRequest, error) { return &ReadSyncRequest{}, nil }
