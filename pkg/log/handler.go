package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey = "error"
)

// withError attaches err and, when present, its stack trace.
func withError(event *zerolog.Event, err error) *zerolog.Event {
	event = event.AnErr(ErrAttrKey, err)
	if obj, ok := errors.UnwrapAll(err).(zerolog.LogObjectMarshaler); ok {
		event = event.Object("details", obj)
	}
	if stacktrace := extractStacktrace(err); stacktrace != "" {
		event = event.Str(StacktraceKey, stacktrace)
	}
	return event
}

func extractStacktrace(err error) string {
	for _, payload := range errors.GetAllSafeDetails(err) {
		if len(payload.SafeDetails) > 0 {
			return payload.SafeDetails[0]
		}
	}
	return ""
}
