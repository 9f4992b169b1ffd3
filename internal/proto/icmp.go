package proto

import "encoding/binary"

const ICMPHeaderLen = 8

const (
	ICMPEchoReply   uint8 = 0
	ICMPEchoRequest uint8 = 8
)

// ICMPLayer is an RFC 792 header. Rest is kept as captured; its meaning
// depends on Type and it is not interpreted here.
type ICMPLayer struct {
	encapsulation

	Type        uint8
	Code        uint8
	TypeText    string
	Checksum    uint16
	ChecksumHex string
	Rest        [4]byte
}

func (*ICMPLayer) Proto() Name { return ICMP }

var ICMPDescriptor = &Descriptor{
	Name:      ICMP,
	HeaderLen: ICMPHeaderLen,
	decode:    decodeICMP,
}

func decodeICMP(b []byte) Layer {
	chk := binary.BigEndian.Uint16(b[2:4])
	return &ICMPLayer{
		Type:        b[0],
		Code:        b[1],
		TypeText:    icmpTypeText(b[0]),
		Checksum:    chk,
		ChecksumHex: FormatHex(uint64(chk), 6),
		Rest:        [4]byte(b[4:8]),
	}
}

func icmpTypeText(t uint8) string {
	switch t {
	case ICMPEchoReply:
		return "reply"
	case ICMPEchoRequest:
		return "request"
	default:
		return "other"
	}
}
