package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/wire"
)

// ClientNameRequest announces the connecting process's user name, sent once
// per circuit after VersionRequest.
type ClientNameRequest struct {
	Name string
}

func (c *ClientNameRequest) CommandCode() Code { return CodeClientName }
func (c *ClientNameRequest) String() string    { return fmt.Sprintf("ClientNameRequest(name=%q)", c.Name) }
func (c *ClientNameRequest) Marshal() ([]byte, error) {
	payload := wire.PaddedString(c.Name, 0)
	return marshalFrame(CodeClientName, 0, 0, 0, 0, payload), nil
}

func DecodeClientNameRequest(payload []byte) (*ClientNameRequest, error) {
	return &ClientNameRequest{Name: wire.UnpaddedString(payload)}, nil
}

// HostNameRequest announces the connecting host's name, sent once per
// circuit after VersionRequest.
type HostNameRequest struct {
	Name string
}

func (h *HostNameRequest) CommandCode() Code { return CodeHostName }
func (h *HostNameRequest) String() string    { return fmt.Sprintf("HostNameRequest(name=%q)", h.Name) }
func (h *HostNameRequest) Marshal() ([]byte, error) {
	payload := wire.PaddedString(h.Name, 0)
	return marshalFrame(CodeHostName, 0, 0, 0, 0, payload), nil
}

func DecodeHostNameRequest(payload []byte) (*HostNameRequest, error) {
	return &HostNameRequest{Name: wire.UnpaddedString(payload)}, nil
}
