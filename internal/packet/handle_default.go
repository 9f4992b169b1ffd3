//go:build !linux

package packet

import (
	"errors"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

var _ Handle = (*DefaultHandle)(nil)

type DefaultHandle struct {
	*pcap.Handle
	name string
}

// OpenLive opens a libpcap handle on opts.Interface. Without an
// interface the first device reported by libpcap is used, and frames
// carry that device's name. Non-Ethernet devices are rejected.
func OpenLive(opts Options) (Handle, error) {
	opts = opts.withDefaults()

	device, err := deviceName(opts)
	if err != nil {
		return nil, &BindError{Interface: opts.interfaceName(), Err: err}
	}

	iHandle, err := pcap.NewInactiveHandle(device)
	if err != nil {
		return nil, &BindError{Interface: device, Err: err}
	}
	defer iHandle.CleanUp()

	// max bytes per packet to capture
	if err := iHandle.SetSnapLen(opts.SnapLen); err != nil {
		return nil, &BindError{Interface: device, Err: err}
	}

	if err := iHandle.SetPromisc(opts.Promiscuous); err != nil {
		return nil, &BindError{Interface: device, Err: err}
	}

	if err := iHandle.SetTimeout(opts.ReadTimeout); err != nil {
		return nil, &BindError{Interface: device, Err: err}
	}

	handle, err := iHandle.Activate()
	if err != nil {
		return nil, &BindError{Interface: device, Err: err}
	}

	if err := checkLinkType(device, handle.LinkType()); err != nil {
		handle.Close()
		return nil, err
	}

	return &DefaultHandle{Handle: handle, name: device}, nil
}

func deviceName(opts Options) (string, error) {
	if opts.Interface != nil {
		return selectDevice(opts, nil)
	}

	devs, err := pcap.FindAllDevs()
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(devs))
	for _, d := range devs {
		names = append(names, d.Name)
	}

	return selectDevice(opts, names)
}

func (h *DefaultHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	data, ci, err := h.Handle.ReadPacketData()
	switch {
	case err == nil:
		return data, ci, nil
	case errors.Is(err, pcap.NextErrorTimeoutExpired):
		return nil, ci, ErrReadTimeout
	case errors.Is(err, io.EOF):
		return nil, ci, io.EOF
	default:
		return nil, ci, &CaptureError{Interface: h.name, Err: err}
	}
}

func (h *DefaultHandle) Name() string {
	return h.name
}
