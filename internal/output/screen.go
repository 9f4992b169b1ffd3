package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/xvzc/netsniff/internal/packet"
	"github.com/xvzc/netsniff/internal/proto"
)

var _ packet.Observer = (*Screen)(nil)

const indent = "    "

// Screen prints a human readable block for every frame.
type Screen struct {
	w        io.Writer
	showData bool
	color    bool
}

func NewScreen(w io.Writer, showData bool, color bool) *Screen {
	return &Screen{w: w, showData: showData, color: color}
}

func (s *Screen) Update(f *packet.Frame) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Frame #%d at %s:\n",
		s.style(pterm.FgCyan, "[>]"), f.Seq, f.Timestamp.Local().Format("15:04:05"))

	for _, name := range f.Chain {
		s.renderLayer(&b, f, name)
	}

	if te := f.Truncated; te != nil {
		fmt.Fprintf(&b, "%s%s Truncated %s header: %d of %d bytes\n",
			indent, s.style(pterm.FgYellow, "[!]"), te.Protocol, te.Available, te.Needed)
	}

	if s.showData {
		fmt.Fprintf(&b, "%s%s DATA:\n", indent, s.plus())
		text := strings.ReplaceAll(printable(f.Payload), "\n", "\n"+indent+indent)
		fmt.Fprintf(&b, "%s%s%s\n", indent, indent, text)
	}

	_, _ = io.WriteString(s.w, b.String())
}

func (s *Screen) renderLayer(b *strings.Builder, f *packet.Frame, name proto.Name) {
	switch l := f.Layers[name].(type) {
	case *proto.EthernetLayer:
		s.title(b, "Ethernet %s -> %s", dots(l.Src, 23), l.Dst)
		field(b, "Interface", f.Interface)
		field(b, "Frame Length", strconv.Itoa(f.Length))
		if f.WireLength > f.Length {
			field(b, "Wire Length", strconv.Itoa(f.WireLength))
		}
		field(b, "EtherType", fmt.Sprintf("%s (%s)", l.EtherTypeHex, l.NextProto()))
		field(b, "Epoch Time", fmt.Sprintf("%.6f", float64(f.Timestamp.UnixMicro())/1e6))

	case *proto.IPv4Layer:
		s.title(b, "IPv4 %s -> %-15s", dots(l.Src, 27), l.Dst)
		field(b, "DSCP", strconv.Itoa(int(l.DSCP)))
		field(b, "Total Length", strconv.Itoa(int(l.TotalLen)))
		field(b, "ID", strconv.Itoa(int(l.ID)))
		field(b, "Flags", orNone(l.FlagsText))
		field(b, "TTL", strconv.Itoa(int(l.TTL)))
		field(b, "Protocol", protoOrNumber(l.NextProto(), l.Protocol))
		field(b, "Header Checksum", l.ChecksumHex)

	case *proto.IPv6Layer:
		s.title(b, "IPv6 %s -> %-15s", dots(l.Src, 27), l.Dst)
		field(b, "Traffic Class", l.TrafficClassHex)
		field(b, "Flow Label", l.FlowLabelHex)
		field(b, "Payload Length", strconv.Itoa(int(l.PayloadLen)))
		field(b, "Next Header", protoOrNumber(l.NextProto(), l.NextHeader))
		field(b, "Hop Limit", strconv.Itoa(int(l.HopLimit)))

	case *proto.ARPLayer:
		switch {
		case l.IsRequest():
			s.title(b, "ARP Who has %s ? -> Tell %s", dots(l.TPA, 18), l.SPA)
		case l.IsReply():
			s.title(b, "ARP %s -> Is at %s", dots(l.SPA, 28), l.SHA)
		default:
			s.title(b, "ARP %s -> %s", dots(l.SPA, 28), l.TPA)
		}
		field(b, "Hardware Type", strconv.Itoa(int(l.HType)))
		field(b, "Protocol Type", l.PTypeHex)
		field(b, "Hardware Length", strconv.Itoa(int(l.HLen)))
		field(b, "Protocol Length", strconv.Itoa(int(l.PLen)))
		field(b, "Operation", fmt.Sprintf("%d (%s)", l.Operation, l.OperationText))
		field(b, "Sender Hardware Address", l.SHA)
		field(b, "Sender Protocol Address", l.SPA)
		field(b, "Target Hardware Address", l.THA)
		field(b, "Target Protocol Address", l.TPA)

	case *proto.TCPLayer:
		s.title(b, "TCP %s -> %-15d", dots(strconv.Itoa(int(l.SrcPort)), 28), l.DstPort)
		field(b, "Sequence Number", strconv.FormatUint(uint64(l.Seq), 10))
		field(b, "ACK Number", strconv.FormatUint(uint64(l.Ack), 10))
		field(b, "Flags", fmt.Sprintf("%s > %s", l.FlagsHex, orNone(l.FlagsText)))
		field(b, "Window Size", strconv.Itoa(int(l.Window)))
		field(b, "Checksum", l.ChecksumHex)
		field(b, "Urgent Pointer", strconv.Itoa(int(l.Urgent)))

	case *proto.UDPLayer:
		s.title(b, "UDP %s -> %d", dots(strconv.Itoa(int(l.SrcPort)), 28), l.DstPort)
		field(b, "Length", strconv.Itoa(int(l.Length)))
		field(b, "Checksum", l.ChecksumHex)

	case *proto.ICMPLayer:
		src, dst := endpoints(f)
		s.title(b, "ICMP %s -> %-15s", dots(src, 27), dst)
		field(b, "Type", fmt.Sprintf("%d (%s)", l.Type, l.TypeText))
		field(b, "Code", strconv.Itoa(int(l.Code)))
		field(b, "Checksum", l.ChecksumHex)

	default:
		s.title(b, "Unknown Protocol %s", name)
	}
}

func (s *Screen) title(b *strings.Builder, format string, args ...any) {
	fmt.Fprintf(b, "%s%s %s\n", indent, s.plus(), fmt.Sprintf(format, args...))
}

func (s *Screen) plus() string {
	return s.style(pterm.FgGreen, "[+]")
}

func (s *Screen) style(c pterm.Color, text string) string {
	if !s.color {
		return text
	}
	return c.Sprint(text)
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s%s  %s: %s\n", indent, indent, label, value)
}

// dots right-aligns s in a field of width characters, padded with dots.
func dots(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(".", width-len(s)) + s
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func protoOrNumber(n proto.Name, number uint8) string {
	if n == proto.Terminal {
		return strconv.Itoa(int(number))
	}
	return string(n)
}

func endpoints(f *packet.Frame) (string, string) {
	if ip, ok := f.IPv4(); ok {
		return ip.Src, ip.Dst
	}
	if ip, ok := f.IPv6(); ok {
		return ip.Src, ip.Dst
	}
	return "?", "?"
}

// printable drops invalid UTF-8 and control characters other than
// newlines and tabs.
func printable(b []byte) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(string(b), ""))
}
