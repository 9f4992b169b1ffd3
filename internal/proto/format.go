package proto

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// FormatMAC renders a 6-byte hardware address as lowercase colon hex.
func FormatMAC(b []byte) string {
	return net.HardwareAddr(b).String()
}

// FormatHex renders v as 0x-prefixed hex, zero padded so that the whole
// string including the prefix is at least width characters long.
// FormatHex(0x800, 6) == "0x0800".
func FormatHex(v uint64, width int) string {
	digits := max(width-2, 1)
	return fmt.Sprintf("0x%0*x", digits, v)
}

func formatIPv4(b []byte) string {
	return netip.AddrFrom4([4]byte(b[:4])).String()
}

func formatIPv6(b []byte) string {
	return netip.AddrFrom16([16]byte(b[:16])).String()
}

// bitNames joins the names whose bit is set in v. names[0] is tested
// against the most significant of len(names) bits.
func bitNames(v uint64, names []string) string {
	set := make([]string, 0, len(names))
	for i, name := range names {
		bit := uint(len(names) - 1 - i)
		if v&(1<<bit) != 0 {
			set = append(set, name)
		}
	}
	return strings.Join(set, " ")
}
