package packet

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePcap(t *testing.T, w io.Writer, raws ...[]byte) {
	t.Helper()
	writePcapLinkType(t, w, layers.LinkTypeEthernet, raws...)
}

func writePcapLinkType(t *testing.T, w io.Writer, lt layers.LinkType, raws ...[]byte) {
	t.Helper()

	pw := pcapgo.NewWriter(w)
	require.NoError(t, pw.WriteFileHeader(MaxSnapLen, lt))
	for i, raw := range raws {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000+int64(i), 0),
			CaptureLength: len(raw),
			Length:        len(raw),
		}
		require.NoError(t, pw.WritePacket(ci, raw))
	}
}

func TestReaderHandle(t *testing.T) {
	first := concat(ethHeader(0x0800), ipv4Header(6), tcpHeader(0x002))
	second := ethHeader(0x88cc)

	var buf bytes.Buffer
	writePcap(t, &buf, first, second)

	h, err := NewReaderHandle(&buf, "buffer")
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, layers.LinkTypeEthernet, h.LinkType())
	assert.Equal(t, "buffer", h.Name())

	data, ci, err := h.ReadPacketData()
	require.NoError(t, err)
	assert.Equal(t, first, data)
	assert.Equal(t, int64(1700000000), ci.Timestamp.Unix())

	data, _, err = h.ReadPacketData()
	require.NoError(t, err)
	assert.Equal(t, second, data)

	_, _, err = h.ReadPacketData()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderHandleRejectsGarbage(t *testing.T) {
	_, err := NewReaderHandle(bytes.NewReader([]byte("definitely not a pcap file")), "junk")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBind))
}

func TestReaderHandleRejectsNonEthernet(t *testing.T) {
	tcs := []struct {
		name string
		lt   layers.LinkType
	}{
		{name: "raw ip", lt: layers.LinkTypeRaw},
		{name: "linux cooked", lt: layers.LinkTypeLinuxSLL},
		{name: "bsd loopback", lt: layers.LinkTypeNull},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			writePcapLinkType(t, &buf, tc.lt, ipv4Header(1))

			h, err := NewReaderHandle(&buf, "foreign.pcap")
			require.Error(t, err)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, ErrBind)
			assert.ErrorIs(t, err, ErrUnsupportedLinkType)

			var be *BindError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, "foreign.pcap", be.Interface)
		})
	}
}

func TestOpenFileRejectsNonEthernet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	writePcapLinkType(t, f, layers.LinkTypeRaw, ipv4Header(17))
	require.NoError(t, f.Close())

	_, err = OpenFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedLinkType)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	writePcap(t, f, ethHeader(0x0806))
	require.NoError(t, f.Close())

	h, err := OpenFile(path)
	require.NoError(t, err)

	var got []*Frame
	s := NewSniffer(zerolog.Nop(), h, nil)
	s.Register(ObserverFunc(func(f *Frame) { got = append(got, f) }))
	require.NoError(t, s.Run(t.Context()))

	require.Len(t, got, 1)
	assert.Equal(t, path, got[0].Interface)
	assert.True(t, got[0].IsTruncated())
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.pcap"))
	var be *BindError
	require.ErrorAs(t, err, &be)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
