package output

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/packet"
)

var _ packet.Observer = (*PcapDump)(nil)

// PcapDump appends every frame, byte for byte, to a pcap stream.
type PcapDump struct {
	logger zerolog.Logger

	w      *pcapgo.Writer
	closer io.Closer
	failed bool
}

// NewPcapDump writes the pcap file header to w and returns an observer that
// appends frames after it.
func NewPcapDump(logger zerolog.Logger, w io.Writer, snapLen int) (*PcapDump, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(uint32(snapLen), layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("failed to write pcap header: %w", err)
	}

	return &PcapDump{logger: logger, w: pw}, nil
}

// CreatePcapDump creates (or truncates) the file at path and dumps into it.
func CreatePcapDump(logger zerolog.Logger, path string, snapLen int) (*PcapDump, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create pcap dump %s: %w", path, err)
	}

	d, err := NewPcapDump(logger, f, snapLen)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	d.closer = f

	return d, nil
}

func (d *PcapDump) Update(f *packet.Frame) {
	if d.failed {
		return
	}

	ci := gopacket.CaptureInfo{
		Timestamp:     f.Timestamp,
		CaptureLength: len(f.Raw),
		Length:        f.WireLength,
	}
	if err := d.w.WritePacket(ci, f.Raw); err != nil {
		// One warning is enough; a broken dump stays broken.
		d.failed = true
		d.logger.Warn().Err(err).Uint64("frame", f.Seq).Msg("pcap dump disabled")
	}
}

func (d *PcapDump) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}
