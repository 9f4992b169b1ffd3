package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xvzc/netsniff/internal/session"
)

const (
	// scopeFieldName defines the key for the "scope" field in structured logs.
	scopeFieldName    = "scope"
	runIDFieldName    = "run_id"
	frameSeqFieldName = "frame"
	ifaceFieldName    = "iface"
)

// SetGlobalLogger configures the global zerolog.Logger and returns it.
// Output goes to w, or os.Stderr when w is nil, so that it never
// interleaves with frames rendered on stdout.
func SetGlobalLogger(ctx context.Context, l zerolog.Level, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(l)

	if w == nil {
		w = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		// FormatPrepare intercepts fields just before printing
		// to apply custom formatting, like [SCOPE] brackets and #seq.
		FormatPrepare: func(m map[string]any) error {
			if v, ok := m[runIDFieldName].(string); ok && v != "" {
				m[runIDFieldName] = v
			} else {
				m[runIDFieldName] = ""
			}

			if v, ok := m[scopeFieldName].(string); ok && v != "" {
				m[scopeFieldName] = fmt.Sprintf("[%s]", v)
			} else {
				m[scopeFieldName] = "[APP]"
			}

			// the console writer decodes numbers as json.Number
			if v, ok := m[frameSeqFieldName]; ok && v != nil {
				m[frameSeqFieldName] = fmt.Sprintf("#%v;", v)
			} else {
				m[frameSeqFieldName] = ""
			}

			if v, ok := m["message"].(string); ok && v != "" {
				m["message"] = fmt.Sprintf("%s;", v)
			} else {
				m["message"] = ""
			}

			return nil
		},
		// Exclude the raw field names since they are printed as parts.
		FieldsExclude: []string{
			runIDFieldName,
			scopeFieldName,
			frameSeqFieldName,
		},
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			runIDFieldName,
			scopeFieldName,
			frameSeqFieldName,
			zerolog.MessageFieldName,
		},
	}

	logger := zerolog.New(consoleWriter).Hook(ctxHook{})

	log.Logger = logger.With().Timestamp().Ctx(ctx).Logger()

	return log.Logger
}

// WithScope is a helper for components (like the sniffer or an observer)
// to create a sub-logger with their component name.
func WithScope(logger zerolog.Logger, scope string) zerolog.Logger {
	return logger.With().Str(scopeFieldName, scope).Logger()
}

// ctxHook implements the zerolog.Hook interface.
// Its Run method is called for every log event, allowing us to
// automatically extract values from the context.
type ctxHook struct{}

// Run adds capture-scoped values to the event.
// This hook is triggered only if .Ctx(ctx) is added to the log chain.
func (h ctxHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	if runID, ok := session.RunIDFrom(ctx); ok {
		e.Str(runIDFieldName, runID)
	}

	if seq, ok := session.FrameSeqFrom(ctx); ok {
		e.Uint64(frameSeqFieldName, seq)
	}

	if iface, ok := session.InterfaceFrom(ctx); ok {
		e.Str(ifaceFieldName, iface)
	}
}

type joinableError interface {
	Unwrap() []error
}

// ErrorUnwrapped tries to unwrap an error and prints each error separately.
// If the error is not joined, it logs the single error normally.
func ErrorUnwrapped(logger *zerolog.Logger, msg string, err error) {
	logUnwrapped(logger, zerolog.ErrorLevel, msg, err)
}

func WarnUnwrapped(logger *zerolog.Logger, msg string, err error) {
	logUnwrapped(logger, zerolog.WarnLevel, msg, err)
}

func logUnwrapped(logger *zerolog.Logger, level zerolog.Level, msg string, err error) {
	var joinedErrs joinableError

	if errors.As(err, &joinedErrs) {
		for _, e := range joinedErrs.Unwrap() {
			logger.WithLevel(level).Err(e).Msg(msg)
		}

		return
	}

	logger.WithLevel(level).Err(err).Msg(msg)
}
