package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/wire"
)

// Beacon (upstream: RsrvIsUpResponse) is broadcast periodically by a server
// so clients can detect it coming up, going down, or changing address
// without an active search.
type Beacon struct {
	ServerPort uint16
	BeaconID   uint32
	Address    uint32
}

func (b *Beacon) CommandCode() Code { return CodeBeacon }

func (b *Beacon) String() string {
	return fmt.Sprintf("Beacon(server_port=%d, beacon_id=%d)", b.ServerPort, b.BeaconID)
}

func (b *Beacon) Marshal() ([]byte, error) {
	return marshalFrame(CodeBeacon, 0, b.BeaconID, b.Address, uint32(b.ServerPort), nil), nil
}

func DecodeBeacon(h wire.Header) (*Beacon, error) {
	return &Beacon{ServerPort: uint16(h.Parameter2), BeaconID: h.DataCount, Address: h.Parameter1}, nil
}
