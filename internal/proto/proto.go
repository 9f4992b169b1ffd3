package proto

import (
	"errors"
	"fmt"
)

// Name identifies a protocol within a registry.
type Name string

const (
	Ethernet Name = "Ethernet"
	ARP      Name = "ARP"
	IPv4     Name = "IPv4"
	IPv6     Name = "IPv6"
	TCP      Name = "TCP"
	UDP      Name = "UDP"
	ICMP     Name = "ICMP"

	// Terminal is returned by a resolver when nothing follows a header,
	// or when the selector value is not one the registry knows about.
	Terminal Name = ""
)

func (n Name) String() string {
	if n == Terminal {
		return "-"
	}
	return string(n)
}

var (
	ErrUnknownProtocol = errors.New("proto: unknown protocol")
	ErrTruncatedHeader = errors.New("proto: truncated header")
)

// TruncatedHeaderError reports a buffer that is too short for a declared header.
type TruncatedHeaderError struct {
	Protocol  Name
	Needed    int
	Available int
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf(
		"proto: truncated %s header: need %d bytes, have %d",
		e.Protocol, e.Needed, e.Available,
	)
}

func (e *TruncatedHeaderError) Unwrap() error {
	return ErrTruncatedHeader
}

// Layer is one decoded header. The concrete type is one of the *XxxLayer
// structs in this package; switch on it or on Proto() to select the variant.
type Layer interface {
	// Proto returns the protocol the header was decoded as.
	Proto() Name
	// NextProto returns the encapsulated protocol, or Terminal.
	NextProto() Name

	setNext(n Name)
}

// encapsulation carries the resolved next protocol for every layer variant.
type encapsulation struct {
	next Name
}

func (e *encapsulation) NextProto() Name { return e.next }

func (e *encapsulation) setNext(n Name) { e.next = n }
