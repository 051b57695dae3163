package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/wire"
)

// RepeaterRegisterRequest asks the local CA repeater to forward beacons to
// this client's UDP port.
type RepeaterRegisterRequest struct {
	ClientAddress uint32
}

func (r *RepeaterRegisterRequest) CommandCode() Code { return CodeRepeaterRegister }

func (r *RepeaterRegisterRequest) String() string {
	return fmt.Sprintf("RepeaterRegisterRequest(client_address=%d)", r.ClientAddress)
}

func (r *RepeaterRegisterRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeRepeaterRegister, 0, 0, r.ClientAddress, 0, nil), nil
}

func DecodeRepeaterRegisterRequest(h wire.Header) (*RepeaterRegisterRequest, error) {
	return &RepeaterRegisterRequest{ClientAddress: h.Parameter1}, nil
}

// RepeaterConfirmResponse is the repeater's acknowledgment of registration.
type RepeaterConfirmResponse struct {
	RepeaterAddress uint32
}

func (r *RepeaterConfirmResponse) CommandCode() Code { return CodeRepeaterConfirm }

func (r *RepeaterConfirmResponse) String() string {
	return fmt.Sprintf("RepeaterConfirmResponse(repeater_address=%d)", r.RepeaterAddress)
}

func (r *RepeaterConfirmResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeRepeaterConfirm, 0, 0, r.RepeaterAddress, 0, nil), nil
}

func DecodeRepeaterConfirmResponse(h wire.Header) (*RepeaterConfirmResponse, error) {
	return &RepeaterConfirmResponse{RepeaterAddress: h.Parameter1}, nil
}
