package packet

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// AllInterfaces is reported as the interface of frames captured on an unbound handle.
const AllInterfaces = "all"

const (
	DefaultSnapLen     = 9000
	MaxSnapLen         = 65535
	DefaultReadTimeout = 250 * time.Millisecond
)

var (
	ErrBind    = errors.New("packet: cannot open capture source")
	ErrCapture = errors.New("packet: capture failed")
	// ErrReadTimeout is returned by a live handle when no frame arrived
	// within its read timeout. It is not fatal.
	ErrReadTimeout = errors.New("packet: read timeout")
	// ErrUnsupportedLinkType is wrapped in a BindError when a source does
	// not deliver Ethernet frames.
	ErrUnsupportedLinkType = errors.New("packet: unsupported link type")
)

// Handle is a common interface for raw sockets (Linux), pcap (others)
// and capture files.
type Handle interface {
	// ReadPacketData blocks until the next frame is available.
	ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error)

	LinkType() layers.LinkType

	// Name returns the bound interface name, or AllInterfaces.
	Name() string

	// Close releases the underlying socket or file.
	Close()
}

// Options configures a live capture handle.
type Options struct {
	// Interface to bind to; nil captures on every interface.
	Interface   *net.Interface
	SnapLen     int
	Promiscuous bool
	ReadTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.SnapLen <= 0 || o.SnapLen > MaxSnapLen {
		o.SnapLen = DefaultSnapLen
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	return o
}

func (o Options) interfaceName() string {
	if o.Interface == nil {
		return AllInterfaces
	}
	return o.Interface.Name
}

// checkLinkType rejects every source that Walk cannot decode from its first byte.
func checkLinkType(name string, lt layers.LinkType) error {
	if lt == layers.LinkTypeEthernet {
		return nil
	}
	return &BindError{
		Interface: name,
		Err:       fmt.Errorf("%w: %s (%d)", ErrUnsupportedLinkType, lt, int(lt)),
	}
}

// selectDevice returns the device a live handle binds to. An unbound
// handle falls back to the first of the available devices.
func selectDevice(opts Options, available []string) (string, error) {
	if opts.Interface != nil {
		return opts.Interface.Name, nil
	}
	if len(available) == 0 {
		return "", errors.New("no capture devices found")
	}
	return available[0], nil
}

// BindError is returned when a capture source cannot be opened.
type BindError struct {
	Interface string
	Err       error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("packet: cannot open capture source %q: %v", e.Interface, e.Err)
}

func (e *BindError) Unwrap() []error { return []error{ErrBind, e.Err} }

// CaptureError is a fatal failure of an open capture source.
type CaptureError struct {
	Interface string
	Err       error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("packet: capture on %q failed: %v", e.Interface, e.Err)
}

func (e *CaptureError) Unwrap() []error { return []error{ErrCapture, e.Err} }
