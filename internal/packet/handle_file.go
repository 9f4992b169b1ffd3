package packet

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

var _ Handle = (*FileHandle)(nil)

var pcapNgMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// FileHandle replays frames from a pcap or pcapng stream.
// ReadPacketData returns io.EOF after the last record.
type FileHandle struct {
	r      packetReader
	name   string
	closer io.Closer
}

// OpenFile opens a capture file written by tcpdump, wireshark or PcapDump.
func OpenFile(path string) (Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &BindError{Interface: path, Err: err}
	}

	h, err := newFileHandle(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	h.closer = f

	return h, nil
}

// NewReaderHandle replays frames from r, which must hold a pcap or pcapng
// stream of Ethernet frames.
func NewReaderHandle(r io.Reader, name string) (Handle, error) {
	return newFileHandle(r, name)
}

func newFileHandle(r io.Reader, name string) (*FileHandle, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(4)
	if err != nil {
		return nil, &BindError{Interface: name, Err: err}
	}

	var pr packetReader
	if bytes.Equal(magic, pcapNgMagic) {
		pr, err = pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	} else {
		pr, err = pcapgo.NewReader(br)
	}
	if err != nil {
		return nil, &BindError{Interface: name, Err: err}
	}
	if err := checkLinkType(name, pr.LinkType()); err != nil {
		return nil, err
	}

	return &FileHandle{r: pr, name: name}, nil
}

func (h *FileHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	data, ci, err := h.r.ReadPacketData()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ci, io.EOF
		}
		return nil, ci, &CaptureError{Interface: h.name, Err: err}
	}
	return data, ci, nil
}

func (h *FileHandle) LinkType() layers.LinkType {
	return h.r.LinkType()
}

func (h *FileHandle) Name() string {
	return h.name
}

func (h *FileHandle) Close() {
	if h.closer != nil {
		_ = h.closer.Close()
	}
}
