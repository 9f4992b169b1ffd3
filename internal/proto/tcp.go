package proto

import "encoding/binary"

// TCPHeaderLen covers the 20 byte base header plus 12 bytes of options
// space, which is what a typical SYN or timestamped segment carries.
const TCPHeaderLen = 32

var tcpFlagNames = []string{"NS", "CWR", "ECE", "URG", "ACK", "PSH", "RST", "SYN", "FIN"}

// Bits of TCPLayer.Flags.
const (
	TCPFlagFIN uint16 = 1 << iota
	TCPFlagSYN
	TCPFlagRST
	TCPFlagPSH
	TCPFlagACK
	TCPFlagURG
	TCPFlagECE
	TCPFlagCWR
	TCPFlagNS
)

// TCPLayer is an RFC 793 header.
type TCPLayer struct {
	encapsulation

	SrcPort    uint16
	DstPort    uint16
	Seq        uint32
	Ack        uint32
	DataOffset uint8
	Reserved   uint8
	// Flags holds the nine flag bits, NS in bit 8 and FIN in bit 0.
	Flags       uint16
	FlagsHex    string
	FlagsText   string
	Window      uint16
	Checksum    uint16
	ChecksumHex string
	Urgent      uint16
}

func (*TCPLayer) Proto() Name { return TCP }

// Has reports whether every bit of flag is set.
func (t *TCPLayer) Has(flag uint16) bool { return t.Flags&flag == flag }

var TCPDescriptor = &Descriptor{
	Name:      TCP,
	HeaderLen: TCPHeaderLen,
	decode:    decodeTCP,
}

func decodeTCP(b []byte) Layer {
	word := binary.BigEndian.Uint16(b[12:14])
	flags := TCPFlags(word & 0x01ff)
	chk := binary.BigEndian.Uint16(b[16:18])

	return &TCPLayer{
		SrcPort:     binary.BigEndian.Uint16(b[0:2]),
		DstPort:     binary.BigEndian.Uint16(b[2:4]),
		Seq:         binary.BigEndian.Uint32(b[4:8]),
		Ack:         binary.BigEndian.Uint32(b[8:12]),
		DataOffset:  uint8(word >> 12),
		Reserved:    uint8(word>>9) & 0x07,
		Flags:       uint16(flags),
		FlagsHex:    FormatHex(uint64(flags), 5),
		FlagsText:   flags.String(),
		Window:      binary.BigEndian.Uint16(b[14:16]),
		Checksum:    chk,
		ChecksumHex: FormatHex(uint64(chk), 6),
		Urgent:      binary.BigEndian.Uint16(b[18:20]),
	}
}

// TCPFlags is the 9-bit flag field of a TCP header.
type TCPFlags uint16

// String lists the set flags in header order, e.g. "ACK SYN".
func (f TCPFlags) String() string {
	return bitNames(uint64(f&0x01ff), tcpFlagNames)
}
