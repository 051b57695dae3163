// Package command implements the closed Channel Access command catalog: the
// typed request/response values that ride inside a header-plus-payload
// frame, their field layout, and their Marshal/Decode pair.
//
// Every command type here is a plain value; nothing in this package touches
// a socket, a clock, or a byte stream beyond the single frame it is given.
// internal/framer turns wire bytes into these values (and back); internal/
// circuit is the only package that knows which commands are legal to send
// or receive in which state.
package command

import "fmt"

// Code identifies a command class by its wire command-code field.
//
// These are the real EPICS Channel Access command identifiers (CAproto
// §Commands); _commands.py is the authoritative catalog this package
// mirrors (spec Open Question: messages.py is a divergent, incomplete
// second catalog in the original source and is not used here).
type Code uint16

const (
	CodeVersion         Code = 0
	CodeEventAdd        Code = 1
	CodeEventCancel     Code = 2
	CodeSearch          Code = 6
	CodeEventsOff       Code = 8
	CodeEventsOn        Code = 9
	CodeReadSync        Code = 10
	CodeError           Code = 11
	CodeClearChannel    Code = 12
	CodeBeacon          Code = 13
	CodeNotFound        Code = 14
	CodeReadNotify      Code = 15
	CodeRepeaterConfirm Code = 17
	CodeCreateChannel   Code = 18
	CodeWriteNotify     Code = 19
	CodeClientName      Code = 20
	CodeHostName        Code = 21
	CodeAccessRights    Code = 22
	CodeEcho            Code = 23
	CodeRepeaterRegister Code = 24
	CodeCreateChFail    Code = 26
	CodeServerDisconn   Code = 27
)

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

var codeNames = map[Code]string{
	CodeVersion: "Version", CodeEventAdd: "EventAdd", CodeEventCancel: "EventCancel",
	CodeSearch: "Search", CodeEventsOff: "EventsOff", CodeEventsOn: "EventsOn",
	CodeReadSync: "ReadSync", CodeError: "Error", CodeClearChannel: "ClearChannel",
	CodeBeacon: "Beacon", CodeNotFound: "NotFound", CodeReadNotify: "ReadNotify",
	CodeRepeaterConfirm: "RepeaterConfirm", CodeCreateChannel: "CreateChannel",
	CodeWriteNotify: "WriteNotify", CodeClientName: "ClientName", CodeHostName: "HostName",
	CodeAccessRights: "AccessRights", CodeEcho: "Echo", CodeRepeaterRegister: "RepeaterRegister",
	CodeCreateChFail: "CreateChFail", CodeServerDisconn: "ServerDisconn",
}

// Role names which side of a circuit originates a command.
type Role int

const (
	CLIENT Role = iota
	SERVER
)

func (r Role) String() string {
	if r == CLIENT {
		return "CLIENT"
	}
	return "SERVER"
}

// Transport distinguishes stream (TCP, VirtualCircuit) commands from
// datagram (UDP, Broadcaster) commands.
type Transport int

const (
	Stream Transport = iota
	Datagram
)

// Command is implemented by every concrete command type in this package.
type Command interface {
	fmt.Stringer
	// CommandCode returns the wire command code for this command class.
	CommandCode() Code
	// Marshal returns the header-plus-payload-plus-padding wire bytes for
	// this command.
	Marshal() ([]byte, error)
}
