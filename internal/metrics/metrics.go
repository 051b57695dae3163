// Package metrics provides optional Prometheus instrumentation for the
// Channel Access engine. Every method on *Recorder is nil-safe: a circuit or
// broadcaster that never has a Recorder wired in pays no cost and performs
// no I/O, keeping the core free of any particular observability stack (spec
// §5, §7 — this package is a host-side concern, never imported by
// internal/wire, internal/dbr, internal/command, internal/framer, or
// internal/state).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder groups the counters a host application may want to export for one
// or more VirtualCircuit/Broadcaster instances sharing a single Prometheus
// registry.
type Recorder struct {
	CommandsSent     *prometheus.CounterVec
	CommandsReceived *prometheus.CounterVec
	ProtocolErrors   *prometheus.CounterVec
	IDWraps          *prometheus.CounterVec
}

// NewRecorder creates and registers the engine's counters with reg. If reg
// is nil, the counters are created but never registered (useful in tests).
// On re-registration, existing collectors already in the registry are
// reused so restart-safe metrics keep exporting correctly.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		CommandsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caproto",
			Name:      "commands_sent_total",
			Help:      "Total number of Channel Access commands sent, by command name.",
		}, []string{"command"}),
		CommandsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caproto",
			Name:      "commands_received_total",
			Help:      "Total number of Channel Access commands received, by command name.",
		}, []string{"command"}),
		ProtocolErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caproto",
			Name:      "protocol_errors_total",
			Help:      "Total number of protocol errors raised, by kind (local, remote).",
		}, []string{"kind"}),
		IDWraps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caproto",
			Name:      "id_wraps_total",
			Help:      "Total number of id counter wraparounds, by kind (cid, sid, ioid, subscriptionid, searchid).",
		}, []string{"kind"}),
	}

	if reg != nil {
		r.CommandsSent = registerOrReuse(reg, r.CommandsSent).(*prometheus.CounterVec)
		r.CommandsReceived = registerOrReuse(reg, r.CommandsReceived).(*prometheus.CounterVec)
		r.ProtocolErrors = registerOrReuse(reg, r.ProtocolErrors).(*prometheus.CounterVec)
		r.IDWraps = registerOrReuse(reg, r.IDWraps).(*prometheus.CounterVec)
	}

	return r
}

// registerOrReuse registers c with reg, returning the already-registered
// collector instead of panicking when the same metric was registered by an
// earlier circuit sharing the registry.
func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// RecordCommandSent increments the sent-commands counter for name. Nil-safe.
func (r *Recorder) RecordCommandSent(name string) {
	if r == nil {
		return
	}
	r.CommandsSent.WithLabelValues(name).Inc()
}

// RecordCommandReceived increments the received-commands counter for name.
// Nil-safe.
func (r *Recorder) RecordCommandReceived(name string) {
	if r == nil {
		return
	}
	r.CommandsReceived.WithLabelValues(name).Inc()
}

// RecordProtocolError increments the protocol-error counter for kind
// ("local" or "remote"). Nil-safe.
func (r *Recorder) RecordProtocolError(kind string) {
	if r == nil {
		return
	}
	r.ProtocolErrors.WithLabelValues(kind).Inc()
}

// RecordIDWrap increments the id-wrap counter for kind. Nil-safe.
func (r *Recorder) RecordIDWrap(kind string) {
	if r == nil {
		return
	}
	r.IDWraps.WithLabelValues(kind).Inc()
}
