package log

import (
	"log/slog"
	"time"
)

func Queue(name string) slog.Attr {
	return slog.String("queue", name)
}

func EventID(id string) slog.Attr {
	return slog.String("event_id", id)
}

func Timeout(d time.Duration) slog.Attr {
	return slog.Duration("timeout", d)
}

func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}
