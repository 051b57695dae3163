package circuit

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/logging"
	"github.com/kulaginds/caproto-go/internal/metrics"
	"github.com/kulaginds/caproto-go/internal/protoerr"
)

// circuitKey identifies one VirtualCircuit by peer address and priority,
// matching _hub.py's (address, priority) circuit keying (spec §12's
// Supplemented features, recovered from original_source/caproto/_hub.py).
type circuitKey struct {
	host     string
	port     uint16
	priority uint16
}

// Registry is an optional convenience layer over raw VirtualCircuit and
// Broadcaster usage: one client process's view of every circuit and channel
// it currently owns, keyed the way the original source's Hub keyed them.
// Registry is not part of the sans-I/O core's required surface — a host may
// drive VirtualCircuit/Broadcaster directly instead — but most non-trivial
// clients want exactly this bookkeeping, so it ships alongside.
type Registry struct {
	ourRole command.Role

	Log     *logging.Logger
	Metrics *metrics.Recorder

	circuits      map[circuitKey]*VirtualCircuit
	channelsByCID map[uint32]*Channel

	broadcaster *Broadcaster
}

// NewRegistry builds an empty Registry for ourRole, with its own
// Broadcaster.
func NewRegistry(ourRole command.Role) *Registry {
	b := NewBroadcaster(ourRole)
	return &Registry{
		ourRole:       ourRole,
		circuits:      make(map[circuitKey]*VirtualCircuit),
		channelsByCID: make(map[uint32]*Channel),
		broadcaster:   b,
	}
}

// Broadcaster returns the Registry's owned UDP peer.
func (r *Registry) Broadcaster() *Broadcaster { return r.broadcaster }

// CircuitFor returns the existing VirtualCircuit to (host, port) at
// priority, or creates and registers a new one.
func (r *Registry) CircuitFor(host string, port uint16, priority uint16) (*VirtualCircuit, error) {
	key := circuitKey{host: host, port: port, priority: priority}
	if c, ok := r.circuits[key]; ok {
		return c, nil
	}
	c, err := NewVirtualCircuit(r.ourRole, host, port, priority)
	if err != nil {
		return nil, err
	}
	c.Log = r.Log
	c.Metrics = r.Metrics
	r.circuits[key] = c
	return c, nil
}

// Channel returns the channel for cid across every circuit this registry
// knows about, since cid is unique within this client (spec §3's Channel
// invariant) regardless of which circuit it ended up bound to.
func (r *Registry) Channel(cid uint32) (*Channel, bool) {
	ch, ok := r.channelsByCID[cid]
	return ch, ok
}

// NewChannel allocates a channel under the registry's bookkeeping for name,
// to be bound to a circuit later (once a search resolves it), mirroring
// _hub.py's pattern of creating a Channel before its circuit is known.
func (r *Registry) NewChannel(name string, cid uint32, priority uint16) (*Channel, error) {
	if name == "" {
		return nil, &protoerr.ValueError{Field: "Name", Value: name, Message: "channel name must not be empty"}
	}
	if priority > 99 {
		return nil, &protoerr.ValueError{Field: "Priority", Value: priority, Message: "priority must be in [0, 99]"}
	}
	ch := &Channel{Name: name, CID: cid, Priority: priority}
	r.channelsByCID[cid] = ch
	return ch, nil
}

// BindChannel attaches ch (previously created with NewChannel, unbound) to
// the circuit for (host, port) at ch's priority, registering it in both the
// circuit's and the registry's cid maps. Call this once a SearchResponse
// names the server address that hosts ch.
func (r *Registry) BindChannel(ch *Channel, host string, port uint16) error {
	if ch.circuit != nil {
		return fmt.Errorf("channel %q (cid=%d) already bound to a circuit", ch.Name, ch.CID)
	}
	c, err := r.CircuitFor(host, port, ch.Priority)
	if err != nil {
		return err
	}
	c.bindChannel(ch)
	return nil
}

// Circuits returns every circuit this registry currently owns.
func (r *Registry) Circuits() []*VirtualCircuit {
	out := make([]*VirtualCircuit, 0, len(r.circuits))
	for _, c := range r.circuits {
		out = append(out, c)
	}
	return out
}
