package session

import (
	"context"
	"math/rand/v2"
	"unsafe"
)

// We define unexported key types to prevent key collisions with other packages.
type (
	runIDCtxKey     struct{}
	frameSeqCtxKey  struct{}
	interfaceCtxKey struct{}
)

// WithNewRunID ensures a capture run ID is present in the context.
// If one already exists, it returns the original context unmodified.
func WithNewRunID(ctx context.Context) context.Context {
	if _, ok := RunIDFrom(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, runIDCtxKey{}, generateRunID())
}

// RunIDFrom extracts the capture run ID from the context, if one exists.
func RunIDFrom(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDCtxKey{}).(string)
	return runID, ok
}

// WithFrameSeq returns a new context carrying the sequence number of the
// frame currently being decoded.
func WithFrameSeq(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, frameSeqCtxKey{}, seq)
}

func FrameSeqFrom(ctx context.Context) (uint64, bool) {
	seq, ok := ctx.Value(frameSeqCtxKey{}).(uint64)
	return seq, ok
}

// WithInterface returns a new context carrying the capture interface name.
func WithInterface(ctx context.Context, iface string) context.Context {
	return context.WithValue(ctx, interfaceCtxKey{}, iface)
}

func InterfaceFrom(ctx context.Context) (string, bool) {
	iface, ok := ctx.Value(interfaceCtxKey{}).(string)
	return iface, ok
}

// generateRunID creates a new random 8 character hex ID.
func generateRunID() string {
	b := make([]byte, 8)

	q := rand.Uint32()

	// iterate from last index (7) down to 0
	for i := 7; i >= 0; i-- {
		r := uint8(q & 0xF)
		q >>= 4
		if r > 9 {
			r += 0x27
		}
		b[i] = r + 0x30
	}

	return unsafe.String(unsafe.SliceData(b), 8)
}
