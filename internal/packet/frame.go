package packet

import (
	"time"

	"github.com/xvzc/netsniff/internal/proto"
)

// Frame is one captured buffer and everything decoded from it.
// Observers receive it read-only and must not keep it past Update.
type Frame struct {
	Seq       uint64
	Timestamp time.Time
	Interface string
	// Length is the number of captured bytes, WireLength the size of the
	// frame on the wire (larger when the snap length cut it short).
	Length     int
	WireLength int
	// Raw is the captured buffer. It is shared with Payload and must not be modified.
	Raw []byte

	// Chain lists the decoded protocols outermost first. It is empty when
	// the frame is shorter than an Ethernet header; Truncated says so.
	Chain  []proto.Name
	Layers map[proto.Name]proto.Layer
	// Payload holds every byte after the last decoded header.
	Payload []byte
	// Truncated is set when decoding stopped on a header that did not
	// fit in the remaining bytes.
	Truncated *proto.TruncatedHeaderError
}

// Meta is the capture metadata attached to a frame by its producer.
type Meta struct {
	Seq        uint64
	Timestamp  time.Time
	Interface  string
	WireLength int
}

func newFrame(meta Meta, raw []byte) *Frame {
	n := len(raw)
	wire := meta.WireLength
	if wire < n {
		wire = n
	}

	return &Frame{
		Seq:        meta.Seq,
		Timestamp:  meta.Timestamp,
		Interface:  meta.Interface,
		Length:     n,
		WireLength: wire,
		Raw:        raw,
		Chain:      make([]proto.Name, 0, 3),
		Layers:     make(map[proto.Name]proto.Layer, 3),
	}
}

func (f *Frame) Layer(n proto.Name) (proto.Layer, bool) {
	l, ok := f.Layers[n]
	return l, ok
}

// Innermost returns the last decoded layer, or nil for a frame too short
// to hold a link-layer header.
func (f *Frame) Innermost() proto.Layer {
	if len(f.Chain) == 0 {
		return nil
	}
	return f.Layers[f.Chain[len(f.Chain)-1]]
}

func (f *Frame) IsTruncated() bool {
	return f.Truncated != nil
}

func (f *Frame) Ethernet() (*proto.EthernetLayer, bool) {
	return layerAs[*proto.EthernetLayer](f, proto.Ethernet)
}

func (f *Frame) ARP() (*proto.ARPLayer, bool) {
	return layerAs[*proto.ARPLayer](f, proto.ARP)
}

func (f *Frame) IPv4() (*proto.IPv4Layer, bool) {
	return layerAs[*proto.IPv4Layer](f, proto.IPv4)
}

func (f *Frame) IPv6() (*proto.IPv6Layer, bool) {
	return layerAs[*proto.IPv6Layer](f, proto.IPv6)
}

func (f *Frame) TCP() (*proto.TCPLayer, bool) {
	return layerAs[*proto.TCPLayer](f, proto.TCP)
}

func (f *Frame) UDP() (*proto.UDPLayer, bool) {
	return layerAs[*proto.UDPLayer](f, proto.UDP)
}

func (f *Frame) ICMP() (*proto.ICMPLayer, bool) {
	return layerAs[*proto.ICMPLayer](f, proto.ICMP)
}

func layerAs[T proto.Layer](f *Frame, n proto.Name) (T, bool) {
	l, ok := f.Layers[n].(T)
	return l, ok
}
