package proto

import "encoding/binary"

const EthernetHeaderLen = 14

// Ethertypes the registry knows how to follow.
var ethertypes = map[uint16]Name{
	0x0806: ARP,
	0x0800: IPv4,
	0x86dd: IPv6,
}

// EthernetLayer is an IEEE 802.3 header.
type EthernetLayer struct {
	encapsulation

	Dst          string
	Src          string
	EtherType    uint16
	EtherTypeHex string
}

func (*EthernetLayer) Proto() Name { return Ethernet }

var EthernetDescriptor = &Descriptor{
	Name:      Ethernet,
	HeaderLen: EthernetHeaderLen,
	decode:    decodeEthernet,
	resolve: func(l Layer) Name {
		return ethertypes[l.(*EthernetLayer).EtherType]
	},
}

func decodeEthernet(b []byte) Layer {
	et := binary.BigEndian.Uint16(b[12:14])
	return &EthernetLayer{
		Dst:          FormatMAC(b[0:6]),
		Src:          FormatMAC(b[6:12]),
		EtherType:    et,
		EtherTypeHex: FormatHex(uint64(et), 6),
	}
}
