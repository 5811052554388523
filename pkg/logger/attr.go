package logger

import (
	"log/slog"
	"time"
)

// Attribute constructors keep key names consistent across packages.

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

func Errors(errs ...error) slog.Attr {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return slog.Any("errors", msgs)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func SubmissionID(id string) slog.Attr {
	return slog.String("submission_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Group is a shorthand for slog.Group with pre-built attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return slog.Group(name, args...)
}
