package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the process logger. Non-production environments get
// human-readable console output and debug level.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "production" {
		log = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
		return
	}
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	log = zerolog.New(console).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// Debug logs at debug level with alternating key/value pairs.
func Debug(msg string, kv ...any) {
	emit(log.Debug(), msg, kv)
}

func Info(msg string, kv ...any) {
	emit(log.Info(), msg, kv)
}

func Warn(msg string, kv ...any) {
	emit(log.Warn(), msg, kv)
}

func Error(msg string, kv ...any) {
	emit(log.Error(), msg, kv)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, kv ...any) {
	emit(log.Fatal(), msg, kv)
}

func emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
