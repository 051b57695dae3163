package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/dbr"
	"github.com/kulaginds/caproto-go/internal/protoerr"
	"github.com/kulaginds/caproto-go/internal/wire"
)

// Reply-required flags carried in SearchRequest.data_type, per upstream
// DO_REPLY/NO_REPLY constants.
const (
	NoReply = 5
	DoReply = 10
)

// SearchRequest asks whether any server hosts the named channel. cid is
// encoded in both parameter1 and parameter2 — an upstream quirk the spec's
// Open Questions call out explicitly; this engine reproduces it for
// wire compatibility rather than "fixing" it.
type SearchRequest struct {
	Name    string
	CID     uint32
	Version uint16
	Reply   int // NoReply or DoReply
}

func (s *SearchRequest) CommandCode() Code { return CodeSearch }

func (s *SearchRequest) String() string {
	return fmt.Sprintf("SearchRequest(name=%q, cid=%d, version=%d)", s.Name, s.CID, s.Version)
}

func (s *SearchRequest) Marshal() ([]byte, error) {
	if s.Name == "" {
		return nil, &protoerr.ValueError{Field: "Name", Value: s.Name, Message: "channel name must not be empty"}
	}
	payload := wire.PaddedString(s.Name, 0)
	return marshalFrame(CodeSearch, uint16(s.Reply), uint32(s.Version), s.CID, s.CID, payload), nil
}

func DecodeSearchRequest(h wire.Header, payload []byte) (*SearchRequest, error) {
	return &SearchRequest{
		Name:    wire.UnpaddedString(payload),
		CID:     h.Parameter1,
		Version: uint16(h.DataCount),
		Reply:   int(h.DataType),
	}, nil
}

// SearchResponse answers a SearchRequest from a server that hosts the named
// channel: the client now knows which address to open a VirtualCircuit to.
type SearchResponse struct {
	ServerPort uint16
	CID        uint32
	Version    uint16
}

func (s *SearchResponse) CommandCode() Code { return CodeSearch }

func (s *SearchResponse) String() string {
	return fmt.Sprintf("SearchResponse(server_port=%d, cid=%d, version=%d)", s.ServerPort, s.CID, s.Version)
}

func (s *SearchResponse) Marshal() ([]byte, error) {
	payload, err := dbr.Marshal(&dbr.Int{Value: int16(s.Version)})
	if err != nil {
		return nil, err
	}
	return marshalFrame(CodeSearch, 0, 0, uint32(s.ServerPort), s.CID, payload), nil
}

func DecodeSearchResponse(h wire.Header, payload []byte) (*SearchResponse, error) {
	var v dbr.Int
	if err := dbr.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decode search response payload: %w", err)
	}
	return &SearchResponse{ServerPort: uint16(h.Parameter1), CID: h.Parameter2, Version: uint16(v.Value)}, nil
}

// NotFoundResponse tells a client no server hosts the named channel, so its
// search should keep waiting. Like SearchRequest, cid rides in both
// parameter fields.
type NotFoundResponse struct {
	CID     uint32
	Version uint16
}

func (n *NotFoundResponse) CommandCode() Code { return CodeNotFound }

func (n *NotFoundResponse) String() string {
	return fmt.Sprintf("NotFoundResponse(cid=%d, version=%d)", n.CID, n.Version)
}

func (n *NotFoundResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeNotFound, DoReply, uint32(n.Version), n.CID, n.CID, nil), nil
}

func DecodeNotFoundResponse(h wire.Header) (*NotFoundResponse, error) {
	return &NotFoundResponse{CID: h.Parameter1, Version: uint16(h.DataCount)}, nil
}
