package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/protoerr"
	"github.com/kulaginds/caproto-go/internal/wire"
)

// MaxNameLength is the largest channel name CreateChannelRequest.Marshal
// accepts; the other name-bearing commands do not check it.
const MaxNameLength = 500

// CreateChannelRequest (upstream: CreateChanRequest / CLAIM_CIV) asks a
// server to open cid as a named channel on this circuit.
type CreateChannelRequest struct {
	Name    string
	CID     uint32
	Version uint16
}

func (c *CreateChannelRequest) CommandCode() Code { return CodeCreateChannel }

func (c *CreateChannelRequest) String() string {
	return fmt.Sprintf("CreateChannelRequest(name=%q, cid=%d)", c.Name, c.CID)
}

func (c *CreateChannelRequest) Marshal() ([]byte, error) {
	if c.Name == "" {
		return nil, &protoerr.ValueError{Field: "Name", Value: c.Name, Message: "channel name must not be empty"}
	}
	if len(c.Name) > MaxNameLength {
		return nil, &protoerr.ValueError{Field: "Name", Value: c.Name, Message: "channel name exceeds maximum length"}
	}
	payload := wire.PaddedString(c.Name, 0)
	return marshalFrame(CodeCreateChannel, 0, uint32(c.Version), c.CID, 0, payload), nil
}

func DecodeCreateChannelRequest(h wire.Header, payload []byte) (*CreateChannelRequest, error) {
	return &CreateChannelRequest{
		Name:    wire.UnpaddedString(payload),
		CID:     h.Parameter1,
		Version: uint16(h.DataCount),
	}, nil
}

// CreateChannelResponse grants cid an sid, and reports the channel's native
// type and element count.
type CreateChannelResponse struct {
	DataType  uint16
	DataCount uint32
	CID       uint32
	SID       uint32
}

func (c *CreateChannelResponse) CommandCode() Code { return CodeCreateChannel }

func (c *CreateChannelResponse) String() string {
	return fmt.Sprintf("CreateChannelResponse(cid=%d, sid=%d, data_type=%d, data_count=%d)", c.CID, c.SID, c.DataType, c.DataCount)
}

func (c *CreateChannelResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeCreateChannel, c.DataType, c.DataCount, c.CID, c.SID, nil), nil
}

func DecodeCreateChannelResponse(h wire.Header) (*CreateChannelResponse, error) {
	return &CreateChannelResponse{DataType: h.DataType, DataCount: h.DataCount, CID: h.Parameter1, SID: h.Parameter2}, nil
}

// CreateChannelFailureResponse tells a client that cid could not be created
// (e.g. the name does not exist on that server).
type CreateChannelFailureResponse struct {
	CID uint32
}

func (c *CreateChannelFailureResponse) CommandCode() Code { return CodeCreateChFail }
func (c *CreateChannelFailureResponse) String() string {
	return fmt.Sprintf("CreateChannelFailureResponse(cid=%d)", c.CID)
}
func (c *CreateChannelFailureResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeCreateChFail, 0, 0, c.CID, 0, nil), nil
}

func DecodeCreateChannelFailureResponse(h wire.Header) (*CreateChannelFailureResponse, error) {
	return &CreateChannelFailureResponse{CID: h.Parameter1}, nil
}

// ClearChannelRequest asks the server to destroy a channel.
type ClearChannelRequest struct {
	SID uint32
	CID uint32
}

func (c *ClearChannelRequest) CommandCode() Code { return CodeClearChannel }
func (c *ClearChannelRequest) String() string {
	return fmt.Sprintf("ClearChannelRequest(sid=%d, cid=%d)", c.SID, c.CID)
}
func (c *ClearChannelRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeClearChannel, 0, 0, c.SID, c.CID, nil), nil
}

func DecodeClearChannelRequest(h wire.Header) (*ClearChannelRequest, error) {
	return &ClearChannelRequest{SID: h.Parameter1, CID: h.Parameter2}, nil
}

// ClearChannelResponse confirms a channel was destroyed.
type ClearChannelResponse struct {
	SID uint32
	CID uint32
}

func (c *ClearChannelResponse) CommandCode() Code { return CodeClearChannel }
func (c *ClearChannelResponse) String() string {
	return fmt.Sprintf("ClearChannelResponse(sid=%d, cid=%d)", c.SID, c.CID)
}
func (c *ClearChannelResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeClearChannel, 0, 0, c.SID, c.CID, nil), nil
}

func DecodeClearChannelResponse(h wire.Header) (*ClearChannelResponse, error) {
	return &ClearChannelResponse{SID: h.Parameter1, CID: h.Parameter2}, nil
}

// AccessRights describes the read/write permission bitmask a server grants
// a client for a channel.
type AccessRights uint32

const (
	AccessNone  AccessRights = 0
	AccessRead  AccessRights = 1 << 0
	AccessWrite AccessRights = 1 << 1
)

// AccessRightsResponse tells a client its permissions on cid.
type AccessRightsResponse struct {
	CID    uint32
	Rights AccessRights
}

func (a *AccessRightsResponse) CommandCode() Code { return CodeAccessRights }
func (a *AccessRightsResponse) String() string {
	return fmt.Sprintf("AccessRightsResponse(cid=%d, rights=%d)", a.CID, a.Rights)
}
func (a *AccessRightsResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeAccessRights, 0, uint32(a.Rights), a.CID, 0, nil), nil
}

func DecodeAccessRightsResponse(h wire.Header) (*AccessRightsResponse, error) {
	return &AccessRightsResponse{CID: h.Parameter1, Rights: AccessRights(h.DataCount)}, nil
}

// ServerDisconnResponse tells a client that cid has been unilaterally
// closed by the server (e.g. the underlying record was removed).
type ServerDisconnResponse struct {
	CID uint32
}

func (s *ServerDisconnResponse) CommandCode() Code { return CodeServerDisconn }
func (s *ServerDisconnResponse) String() string {
	return fmt.Sprintf("ServerDisconnResponse(cid=%d)", s.CID)
}
func (s *ServerDisconnResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeServerDisconn, 0, 0, s.CID, 0, nil), nil
}

func DecodeServerDisconnResponse(h wire.Header) (*ServerDisconnResponse, error) {
	return &ServerDisconnResponse{CID: h.Parameter1}, nil
}
