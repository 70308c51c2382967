package log

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	mlerrors "github.com/YuminosukeSato/mlkit/pkg/errors"
)

// SetupLogger installs a zerolog logger writing to stderr as the default
// logger and routes mlkit warnings through it.
//
// format is "json" or "console".
func SetupLogger(loglevel, format string) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}

	var zl zerolog.Logger
	switch format {
	case "json", "":
		zl = zerolog.New(os.Stderr)
	case "console":
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	default:
		return mlerrors.NewValidationError("log-format", "must be json or console", format)
	}
	zl = zl.Level(toZerologLevel(level)).With().Timestamp().Logger()

	SetLogger(FromZerolog(zl))
	mlerrors.SetZerologWarnFunc(func(w error) {
		event := zl.Warn()
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			event = event.EmbedObject(obj)
		}
		event.Msg(w.Error())
	})
	return nil
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, mlerrors.NewValidationError("log-level", fmt.Sprintf("invalid log level :%s", level), level)
	}
}
