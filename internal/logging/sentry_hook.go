package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// EventCapturer is satisfied by *sentry.Hub.
type EventCapturer interface {
	CaptureEvent(event *sentry.Event) *sentry.EventID
}

// SentryHook forwards log entries of the given levels to sentry.
type SentryHook struct {
	capturer EventCapturer
	levels   []logrus.Level
}

var _ logrus.Hook = (*SentryHook)(nil)

func NewSentryHook(capturer EventCapturer, levels []logrus.Level) *SentryHook {
	return &SentryHook{
		capturer: capturer,
		levels:   levels,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	if h.capturer == nil {
		return errors.New("sentry hook: nil capturer")
	}

	event := sentry.NewEvent()
	event.Level = sentryLevel(entry.Level)
	event.Message = entry.Message
	event.Timestamp = entry.Time
	event.Logger = "logrus"

	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				event.SetException(err, 10)
				continue
			}
		}
		event.Extra[k] = v
	}

	h.capturer.CaptureEvent(event)
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
