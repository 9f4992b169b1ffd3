//go:build linux

package packet

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"golang.org/x/sys/unix"
)

var _ Handle = (*LinuxHandle)(nil)

// LinuxHandle captures frames from an AF_PACKET raw socket using
// x/sys/unix, so it works on every Linux architecture without libpcap.
type LinuxHandle struct {
	fd      int
	ifIndex int
	name    string
	buf     []byte
}

// OpenLive opens a raw socket receiving every ethertype, bound to
// opts.Interface or to all interfaces when it is nil.
func OpenLive(opts Options) (Handle, error) {
	opts = opts.withDefaults()
	name := opts.interfaceName()

	proto := htons(unix.ETH_P_ALL)

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(proto))
	if err != nil {
		return nil, &BindError{Interface: name, Err: err}
	}

	// index 0 receives from every interface
	bindIndex := 0
	if opts.Interface != nil {
		bindIndex = opts.Interface.Index
	}

	sll := &unix.SockaddrLinklayer{
		Protocol: proto,
		Ifindex:  bindIndex,
	}
	if err := unix.Bind(fd, sll); err != nil {
		_ = unix.Close(fd)
		return nil, &BindError{Interface: name, Err: err}
	}

	tv := unix.NsecToTimeval(opts.ReadTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		_ = unix.Close(fd)
		return nil, &BindError{Interface: name, Err: err}
	}

	if opts.Promiscuous && bindIndex != 0 {
		mreq := &unix.PacketMreq{
			Ifindex: int32(bindIndex),
			Type:    unix.PACKET_MR_PROMISC,
		}
		err := unix.SetsockoptPacketMreq(fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, mreq)
		if err != nil {
			_ = unix.Close(fd)
			return nil, &BindError{Interface: name, Err: err}
		}
	}

	return &LinuxHandle{
		fd:      fd,
		ifIndex: bindIndex,
		name:    name,
		buf:     make([]byte, opts.SnapLen),
	}, nil
}

// ReadPacketData reads one frame. MSG_TRUNC makes the kernel report the
// wire length even when the frame did not fit in the snap buffer.
func (h *LinuxHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	n, _, err := unix.Recvfrom(h.fd, h.buf, unix.MSG_TRUNC)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return nil, gopacket.CaptureInfo{}, ErrReadTimeout
		}
		return nil, gopacket.CaptureInfo{}, &CaptureError{Interface: h.name, Err: err}
	}

	captured := min(n, len(h.buf))
	data := make([]byte, captured)
	copy(data, h.buf[:captured])

	ci := gopacket.CaptureInfo{
		Timestamp:      time.Now(),
		CaptureLength:  captured,
		Length:         n,
		InterfaceIndex: h.ifIndex,
	}

	return data, ci, nil
}

func (h *LinuxHandle) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (h *LinuxHandle) Name() string {
	return h.name
}

func (h *LinuxHandle) Close() {
	_ = unix.Close(h.fd)
}

func htons(v uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return binary.NativeEndian.Uint16(b[:])
}
