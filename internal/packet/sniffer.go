package packet

import (
	"context"
	"errors"
	"io"
	"maps"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/logging"
	"github.com/xvzc/netsniff/internal/proto"
	"github.com/xvzc/netsniff/internal/session"
)

// Observer receives every decoded frame, in capture order.
type Observer interface {
	Update(f *Frame)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(f *Frame)

func (fn ObserverFunc) Update(f *Frame) { fn(f) }

// Stats is a snapshot of the sniffer's counters.
type Stats struct {
	Frames    uint64
	Truncated uint64
	Bytes     uint64
	Protocols map[proto.Name]uint64
}

// Sniffer owns a capture handle and feeds every frame read from it through
// Walk and then to the registered observers, one frame at a time.
type Sniffer struct {
	logger zerolog.Logger

	handle    Handle
	registry  *proto.Registry
	observers []Observer
	limit     uint64

	seq   uint64
	mu    sync.Mutex
	stats Stats
}

func NewSniffer(
	logger zerolog.Logger,
	handle Handle,
	registry *proto.Registry,
) *Sniffer {
	if registry == nil {
		registry = proto.DefaultRegistry()
	}

	return &Sniffer{
		logger:   logger,
		handle:   handle,
		registry: registry,
		stats:    Stats{Protocols: make(map[proto.Name]uint64)},
	}
}

// Register appends o to the observers notified for each frame.
// It must not be called while Run is active.
func (s *Sniffer) Register(o Observer) {
	s.observers = append(s.observers, o)
}

// SetLimit makes Run return after n frames. Zero means no limit.
func (s *Sniffer) SetLimit(n uint64) {
	s.limit = n
}

// Run captures until ctx is cancelled, the frame limit is reached, the
// source is exhausted or it fails. Only the last case returns an error.
// The handle is closed when Run returns.
func (s *Sniffer) Run(ctx context.Context) error {
	defer s.handle.Close()

	ctx = session.WithNewRunID(ctx)
	ctx = session.WithInterface(ctx, s.handle.Name())

	logger := s.logger.With().Ctx(ctx).Logger()
	logger.Info().
		Str("iface", s.handle.Name()).
		Str("link_type", s.handle.LinkType().String()).
		Msg("capture started")

	for {
		if ctx.Err() != nil {
			logger.Info().Msg("capture interrupted")
			return nil
		}

		if s.limit > 0 && s.seq >= s.limit {
			logger.Info().Uint64("frames", s.seq).Msg("frame limit reached")
			return nil
		}

		data, ci, err := s.handle.ReadPacketData()
		if err != nil {
			switch {
			case errors.Is(err, ErrReadTimeout):
				continue
			case errors.Is(err, io.EOF):
				logger.Info().Uint64("frames", s.seq).Msg("end of capture source")
				return nil
			case ctx.Err() != nil:
				return nil
			}

			var ce *CaptureError
			if !errors.As(err, &ce) {
				err = &CaptureError{Interface: s.handle.Name(), Err: err}
			}
			logging.ErrorUnwrapped(&logger, "capture failed", err)

			return err
		}

		s.seq++
		f := Walk(s.registry, data, Meta{
			Seq:        s.seq,
			Timestamp:  ci.Timestamp,
			Interface:  s.handle.Name(),
			WireLength: ci.Length,
		})
		s.record(f)

		fctx := session.WithFrameSeq(ctx, f.Seq)
		if f.Truncated != nil {
			logger.Debug().Ctx(fctx).Err(f.Truncated).Msg("frame truncated")
		}

		s.notifyAll(fctx, f)
	}
}

func (s *Sniffer) notifyAll(ctx context.Context, f *Frame) {
	for _, o := range s.observers {
		s.notify(ctx, o, f)
	}
}

func (s *Sniffer) notify(ctx context.Context, o Observer, f *Frame) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Ctx(ctx).Msgf("observer %T panicked: %v", o, r)
		}
	}()

	o.Update(f)
}

func (s *Sniffer) record(f *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Frames++
	s.stats.Bytes += uint64(f.Length)
	if f.Truncated != nil {
		s.stats.Truncated++
	}
	for _, n := range f.Chain {
		s.stats.Protocols[n]++
	}
}

// Stats returns a copy of the counters. It is safe to call while Run is active.
func (s *Sniffer) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.Protocols = maps.Clone(s.stats.Protocols)

	return st
}
