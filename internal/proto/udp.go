package proto

import "encoding/binary"

const UDPHeaderLen = 8

// UDPLayer is an RFC 768 header.
type UDPLayer struct {
	encapsulation

	SrcPort     uint16
	DstPort     uint16
	Length      uint16
	Checksum    uint16
	ChecksumHex string
}

func (*UDPLayer) Proto() Name { return UDP }

var UDPDescriptor = &Descriptor{
	Name:      UDP,
	HeaderLen: UDPHeaderLen,
	decode:    decodeUDP,
}

func decodeUDP(b []byte) Layer {
	chk := binary.BigEndian.Uint16(b[6:8])
	return &UDPLayer{
		SrcPort:     binary.BigEndian.Uint16(b[0:2]),
		DstPort:     binary.BigEndian.Uint16(b[2:4]),
		Length:      binary.BigEndian.Uint16(b[4:6]),
		Checksum:    chk,
		ChecksumHex: FormatHex(uint64(chk), 6),
	}
}
