package output

import (
	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/packet"
	"github.com/xvzc/netsniff/internal/proto"
)

var _ packet.Observer = (*Log)(nil)

// Log writes one structured event per frame at info level, or at warn
// level when a header was cut short.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Update(f *packet.Frame) {
	e := l.logger.Info()
	if f.Truncated != nil {
		e = l.logger.Warn().Err(f.Truncated)
	}
	if !e.Enabled() {
		return
	}

	chain := make([]string, 0, len(f.Chain))
	for _, n := range f.Chain {
		chain = append(chain, string(n))
	}

	e = e.Uint64("frame", f.Seq).
		Strs("chain", chain).
		Int("len", f.Length).
		Int("payload", len(f.Payload))

	if ip, ok := f.IPv4(); ok {
		e = e.Str("src", ip.Src).Str("dst", ip.Dst)
	} else if ip, ok := f.IPv6(); ok {
		e = e.Str("src", ip.Src).Str("dst", ip.Dst)
	}

	if inner := f.Innermost(); inner != nil && inner.Proto() != proto.Ethernet {
		e = e.Stringer("proto", inner.Proto())
	}

	e.Msg("frame decoded")
}
