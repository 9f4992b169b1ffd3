package proto

import "encoding/binary"

const IPv6HeaderLen = 40

// IPv6Layer is an RFC 8200 fixed header. Extension headers are not followed.
type IPv6Layer struct {
	encapsulation

	Version         uint8
	TrafficClass    uint8
	TrafficClassHex string
	FlowLabel       uint32
	FlowLabelHex    string
	PayloadLen      uint16
	NextHeader      uint8
	HopLimit        uint8
	Src             string
	Dst             string
}

func (*IPv6Layer) Proto() Name { return IPv6 }

var IPv6Descriptor = &Descriptor{
	Name:      IPv6,
	HeaderLen: IPv6HeaderLen,
	decode:    decodeIPv6,
	resolve: func(l Layer) Name {
		return ipProtocols[l.(*IPv6Layer).NextHeader]
	},
}

func decodeIPv6(b []byte) Layer {
	word := binary.BigEndian.Uint32(b[0:4])
	tc := uint8(word >> 20)
	fl := word & 0x000fffff

	return &IPv6Layer{
		Version:         uint8(word >> 28),
		TrafficClass:    tc,
		TrafficClassHex: FormatHex(uint64(tc), 4),
		FlowLabel:       fl,
		FlowLabelHex:    FormatHex(uint64(fl), 7),
		PayloadLen:      binary.BigEndian.Uint16(b[4:6]),
		NextHeader:      b[6],
		HopLimit:        b[7],
		Src:             formatIPv6(b[8:24]),
		Dst:             formatIPv6(b[24:40]),
	}
}
