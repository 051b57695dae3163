package command

import "github.com/kulaginds/caproto-go/internal/wire"

// EchoRequest is a keepalive probe either circuit party may send; the
// circuit state machine treats an outstanding EchoRequest with no response
// as the CONNECTED -> UNRESPONSIVE transition trigger (the timeout itself
// is the caller's clock, not this engine's).
type EchoRequest struct{}

func (e *EchoRequest) CommandCode() Code   { return CodeEcho }
func (e *EchoRequest) String() string      { return "EchoRequest()" }
func (e *EchoRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeEcho, 0, 0, 0, 0, nil), nil
}

func DecodeEchoRequest(wire.Header) (*EchoRequest, error) { return &EchoRequest{}, nil }

// EchoResponse answers an EchoRequest.
type EchoResponse struct{}

func (e *EchoResponse) CommandCode() Code   { return CodeEcho }
func (e *EchoResponse) String() string      { return "EchoResponse()" }
func (e *EchoResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeEcho, 0, 0, 0, 0, nil), nil
}

func DecodeEchoResponse(wire.Header) (*EchoResponse, error) { return &EchoResponse{}, nil }
