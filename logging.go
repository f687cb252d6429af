package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35
	colorBold    = 1
)

func colorize(s string, c int) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", c, s)
}

// lockedWriter keeps concurrent log lines from interleaving
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func InitializeLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	output := zerolog.ConsoleWriter{
		Out:        &lockedWriter{w: colorable.NewColorable(os.Stdout)},
		TimeFormat: time.RFC3339,
	}

	output.FormatLevel = func(i interface{}) string {
		var l string
		if ll, ok := i.(string); ok {
			switch ll {
			case zerolog.LevelTraceValue:
				l = colorize("TRACE", colorMagenta)
			case zerolog.LevelDebugValue:
				l = colorize("DEBUG", colorYellow)
			case zerolog.LevelInfoValue:
				l = colorize("INFO ", colorGreen)
			case zerolog.LevelWarnValue:
				l = colorize("WARN ", colorRed)
			case zerolog.LevelErrorValue:
				l = colorize(colorize("ERROR", colorRed), colorBold)
			case zerolog.LevelFatalValue:
				l = colorize(colorize("FATAL", colorRed), colorBold)
			default:
				l = colorize(fmt.Sprintf("%-5s", ll), colorBold)
			}
		} else {
			l = "???  "
		}
		return fmt.Sprintf("| %s |", l)
	}

	log.Logger = log.Output(output)
}

// ComponentLogger returns a logger tagged with a component name, so each
// subsystem can be filtered in the output.
func ComponentLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("recover_info", rec).
						Bytes("debug_stack", debug.Stack()).
						Msg("HTTP endpoint panic")

					http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}

				logger.Info().
					Str("type", "access").
					Timestamp().
					Str("remote_ip", r.RemoteAddr).
					Str("url", r.URL.Path).
					Str("method", r.Method).
					Int("status", ww.Status()).
					Float64("latency_ms", float64(time.Since(t1).Nanoseconds())/1e6).
					Int("bytes_out", ww.BytesWritten()).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
