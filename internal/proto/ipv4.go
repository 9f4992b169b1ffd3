package proto

import "encoding/binary"

const IPv4HeaderLen = 20

// IP protocol numbers shared by the IPv4 protocol field and the IPv6 next header.
var ipProtocols = map[uint8]Name{
	1:  ICMP,
	6:  TCP,
	17: UDP,
}

var ipv4FlagNames = []string{"RSV", "DF", "MF"}

// IPv4Layer is an RFC 791 header without options.
type IPv4Layer struct {
	encapsulation

	Version     uint8
	IHL         uint8
	DSCP        uint8
	ECN         uint8
	TotalLen    uint16
	ID          uint16
	Flags       uint8
	FlagsText   string
	FragOffset  uint16
	TTL         uint8
	Protocol    uint8
	Checksum    uint16
	ChecksumHex string
	Src         string
	Dst         string
}

func (*IPv4Layer) Proto() Name { return IPv4 }

var IPv4Descriptor = &Descriptor{
	Name:      IPv4,
	HeaderLen: IPv4HeaderLen,
	decode:    decodeIPv4,
	resolve: func(l Layer) Name {
		return ipProtocols[l.(*IPv4Layer).Protocol]
	},
}

func decodeIPv4(b []byte) Layer {
	verIHL := b[0]
	tos := b[1]
	flagsOff := binary.BigEndian.Uint16(b[6:8])
	chk := binary.BigEndian.Uint16(b[10:12])
	flags := uint8(flagsOff >> 13)

	return &IPv4Layer{
		Version:     verIHL >> 4,
		IHL:         verIHL & 0x0f,
		DSCP:        tos >> 2,
		ECN:         tos & 0x03,
		TotalLen:    binary.BigEndian.Uint16(b[2:4]),
		ID:          binary.BigEndian.Uint16(b[4:6]),
		Flags:       flags,
		FlagsText:   bitNames(uint64(flags), ipv4FlagNames),
		FragOffset:  flagsOff & 0x1fff,
		TTL:         b[8],
		Protocol:    b[9],
		Checksum:    chk,
		ChecksumHex: FormatHex(uint64(chk), 6),
		Src:         formatIPv4(b[12:16]),
		Dst:         formatIPv4(b[16:20]),
	}
}
