// Package protoerr defines the error taxonomy for the Channel Access engine.
//
// Most failures in internal/command, internal/framer, and internal/circuit
// are reported with these types rather than by panicking on untrusted input;
// internal/wire and internal/dbr return their own framing and codec errors,
// and internal/state reports an illegal transition as ok=false for
// internal/circuit to wrap. The core never retries or
// suppresses an error; it surfaces enough context (offending command, role,
// state snapshot) for the caller to log and decide.
package protoerr

import "fmt"

// LocalProtocolError means the host tried to send a command that is illegal
// in the circuit's or channel's current state. The command is rejected and
// the connection is left unchanged.
type LocalProtocolError struct {
	// Command names the command class that was rejected.
	Command string
	// Role is the role (CLIENT or SERVER) that attempted the send.
	Role string
	// State describes the sub-state the attempt was rejected from.
	State string
	Err   error
}

func (e *LocalProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("local protocol error: %s not legal for role %s in state %s: %v", e.Command, e.Role, e.State, e.Err)
	}
	return fmt.Sprintf("local protocol error: %s not legal for role %s in state %s", e.Command, e.Role, e.State)
}

func (e *LocalProtocolError) Unwrap() error { return e.Err }

// RemoteProtocolError means bytes received from the peer violate the
// protocol: an unknown command code, a malformed header, or a legal-looking
// command that is illegal in the current state. The host should close the
// connection.
type RemoteProtocolError struct {
	Command string
	Role    string
	State   string
	Err     error
}

func (e *RemoteProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote protocol error: %s not legal for role %s in state %s: %v", e.Command, e.Role, e.State, e.Err)
	}
	return fmt.Sprintf("remote protocol error: %s not legal for role %s in state %s", e.Command, e.Role, e.State)
}

func (e *RemoteProtocolError) Unwrap() error { return e.Err }

// ValueError reports an out-of-bounds argument: a priority outside [0,99],
// a name exceeding the length budget, or a role that is neither CLIENT nor
// SERVER.
type ValueError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s (got %v)", e.Field, e.Message, e.Value)
}

// KeyError reports a reference to an unknown cid, sid, ioid, or
// subscriptionid.
type KeyError struct {
	Kind string // "cid", "sid", "ioid", "subscriptionid"
	Key  uint32
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("unknown %s: %d", e.Kind, e.Key)
}

// ErrorResponseReceived wraps a peer's ERROR_RESPONSE command. It is routine:
// the circuit remains usable, but the ioid named by IOID has been released.
type ErrorResponseReceived struct {
	StatusCode uint32
	Message    string
	IOID       uint32
}

func (e *ErrorResponseReceived) Error() string {
	return fmt.Sprintf("server error response (status %d) for ioid %d: %s", e.StatusCode, e.IOID, e.Message)
}

// ResourceExhaustedError reports that an id counter wrapped at 2^32 and
// every value in its space is currently live — a fatal condition for the
// connection that raised it.
type ResourceExhaustedError struct {
	Kind string
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("%s space exhausted: all values in use after wraparound", e.Kind)
}
