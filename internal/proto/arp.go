package proto

import (
	"encoding/binary"
	"strconv"
)

const ARPHeaderLen = 28

const (
	ARPRequest uint16 = 1
	ARPReply   uint16 = 2
)

// ARPLayer is an RFC 826 packet for Ethernet/IPv4 address pairs.
type ARPLayer struct {
	encapsulation

	HType     uint16
	PType     uint16
	PTypeHex  string
	HLen      uint8
	PLen      uint8
	Operation uint16
	// OperationText is "request", "reply" or the decimal opcode.
	OperationText string
	SHA           string
	SPA           string
	THA           string
	TPA           string
}

func (*ARPLayer) Proto() Name { return ARP }

func (a *ARPLayer) IsRequest() bool { return a.Operation == ARPRequest }

func (a *ARPLayer) IsReply() bool { return a.Operation == ARPReply }

var ARPDescriptor = &Descriptor{
	Name:      ARP,
	HeaderLen: ARPHeaderLen,
	decode:    decodeARP,
}

func decodeARP(b []byte) Layer {
	ptype := binary.BigEndian.Uint16(b[2:4])
	op := binary.BigEndian.Uint16(b[6:8])

	return &ARPLayer{
		HType:         binary.BigEndian.Uint16(b[0:2]),
		PType:         ptype,
		PTypeHex:      FormatHex(uint64(ptype), 6),
		HLen:          b[4],
		PLen:          b[5],
		Operation:     op,
		OperationText: arpOperationText(op),
		SHA:           FormatMAC(b[8:14]),
		SPA:           formatIPv4(b[14:18]),
		THA:           FormatMAC(b[18:24]),
		TPA:           formatIPv4(b[24:28]),
	}
}

func arpOperationText(op uint16) string {
	switch op {
	case ARPRequest:
		return "request"
	case ARPReply:
		return "reply"
	default:
		return strconv.Itoa(int(op))
	}
}
