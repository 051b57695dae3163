package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/wire"
)

// MinimumVersion is the lowest protocol version this engine accepts from a
// peer (spec §6).
const MinimumVersion = 13

// VersionRequest is the first message every CLIENT sends on a new circuit.
// Broadcaster.Search does not add one to a search datagram; a caller may
// place one in front of its SearchRequests.
type VersionRequest struct {
	Priority uint16
	Version  uint16
}

func (v *VersionRequest) CommandCode() Code { return CodeVersion }

func (v *VersionRequest) String() string {
	return fmt.Sprintf("VersionRequest(priority=%d, version=%d)", v.Priority, v.Version)
}

func (v *VersionRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeVersion, 0, uint32(v.Priority), 0, uint32(v.Version), nil), nil
}

func DecodeVersionRequest(h wire.Header) (*VersionRequest, error) {
	return &VersionRequest{Priority: uint16(h.DataCount), Version: uint16(h.Parameter2)}, nil
}

// VersionResponse answers a VersionRequest, naming the protocol version the
// SERVER (or repeater) speaks.
type VersionResponse struct {
	Version uint16
}

func (v *VersionResponse) CommandCode() Code { return CodeVersion }

func (v *VersionResponse) String() string {
	return fmt.Sprintf("VersionResponse(version=%d)", v.Version)
}

func (v *VersionResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeVersion, 0, 0, 0, uint32(v.Version), nil), nil
}

func DecodeVersionResponse(h wire.Header) (*VersionResponse, error) {
	return &VersionResponse{Version: uint16(h.Parameter2)}, nil
}
