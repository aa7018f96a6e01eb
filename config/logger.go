package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggerOptions controls logger behaviour at initialisation time.
type LoggerOptions struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string
	// Pretty enables human-friendly console output. Use false in
	// production to emit pure JSON.
	Pretty bool
	// Output is the writer logs are sent to. Defaults to os.Stdout.
	Output io.Writer
}

// NewLogger builds the application's zerolog root logger.
func NewLogger(opts LoggerOptions) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// AuthLogger adapts a zerolog logger to the auth.Logger interface.
type AuthLogger struct {
	log zerolog.Logger
}

// NewAuthLogger names a component logger for the access-control core.
func NewAuthLogger(log zerolog.Logger, component string) AuthLogger {
	return AuthLogger{log: log.With().Str("component", component).Logger()}
}

func (l AuthLogger) Debug(msg string, args ...any) { l.emit(l.log.Debug(), msg, args) }
func (l AuthLogger) Info(msg string, args ...any)  { l.emit(l.log.Info(), msg, args) }
func (l AuthLogger) Warn(msg string, args ...any)  { l.emit(l.log.Warn(), msg, args) }
func (l AuthLogger) Error(msg string, args ...any) { l.emit(l.log.Error(), msg, args) }

// emit treats args as alternating key/value pairs, the way the auth
// package calls its logger.
func (l AuthLogger) emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}
