package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// ringSize is the number of buffered log lines before the diode starts dropping.
const ringSize = 1000

// NewContextWithLogger installs a console logger on stdout and returns a
// context carrying it, plus a flush function that must run before exit.
func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Non-blocking writes: request handlers never wait on stdout.
	wr := diode.NewWriter(os.Stdout, ringSize, 5*time.Millisecond, func(missed int) {
		fmt.Printf("Logger Dropped %d messages\n", missed)
	})

	logger := newConsoleLogger(wr)
	log.Logger = logger

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

// WithWriter returns a context whose logger writes plain console lines to w.
// Used by tests and one-shot commands that don't need the diode.
func WithWriter(ctx context.Context, w io.Writer) context.Context {
	logger := newConsoleLogger(w)
	return logger.WithContext(ctx)
}

// WithComponent tags every line logged through the returned context.
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromCtx(ctx).With().Str("component", component).Logger()
	return logger.WithContext(ctx)
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

func newConsoleLogger(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}
