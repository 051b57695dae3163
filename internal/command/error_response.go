package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/wire"
)

// ErrorResponse wraps a failed request: the bytes of the original request,
// followed by a null-padded status message. Receiving one surfaces a
// protoerr.ErrorResponseReceived to the caller; the circuit itself stays
// usable (spec §7).
type ErrorResponse struct {
	CID             uint32
	StatusCode      uint32
	OriginalRequest []byte
	Message         string
}

func (e *ErrorResponse) CommandCode() Code { return CodeError }
func (e *ErrorResponse) String() string {
	return fmt.Sprintf("ErrorResponse(cid=%d, status=%d, message=%q)", e.CID, e.StatusCode, e.Message)
}

func (e *ErrorResponse) Marshal() ([]byte, error) {
	msg := wire.PaddedString(e.Message, 0)
	payload := append(append([]byte{}, e.OriginalRequest...), msg...)
	return marshalFrame(CodeError, 0, uint32(len(payload)), e.CID, e.StatusCode, payload), nil
}

func DecodeErrorResponse(h wire.Header, payload []byte) (*ErrorResponse, error) {
	if len(payload) < wire.HeaderSize {
		return nil, fmt.Errorf("error response payload too short: %d bytes", len(payload))
	}
	original := payload[:wire.HeaderSize]
	msg := payload[wire.HeaderSize:]
	return &ErrorResponse{
		CID: h.Parameter1, StatusCode: h.Parameter2,
		OriginalRequest: original, Message: wire.UnpaddedString(msg),
	}, nil
}
