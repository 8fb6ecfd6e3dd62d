package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogMode selects the output format and level.
type LogMode string

const (
	LogModeDebug  LogMode = "debug"
	LogModePretty LogMode = "pretty"
	LogModeInfo   LogMode = "info"
	LogModeProd   LogMode = "prod"
	LogModeTest   LogMode = "test"
)

var (
	log = zerolog.Nop()
	mu  sync.RWMutex
)

// ParseMode maps a flag or config value to a LogMode, defaulting to pretty.
func ParseMode(mode string) LogMode {
	switch LogMode(mode) {
	case LogModeDebug, LogModePretty, LogModeInfo, LogModeProd, LogModeTest:
		return LogMode(mode)
	default:
		return LogModePretty
	}
}

// Init configures the global logger for mode, writing to stdout.
func Init(mode LogMode) {
	InitWithWriter(mode, os.Stdout)
}

// InitWithWriter configures the global logger for mode, writing to out.
func InitWithWriter(mode LogMode, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	switch mode {
	case LogModeProd:
		l = zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case LogModeTest:
		l = zerolog.New(out).Level(zerolog.WarnLevel)
	case LogModeDebug:
		l = zerolog.New(consoleWriter(out)).Level(zerolog.DebugLevel).With().Timestamp().Caller().Logger()
	case LogModeInfo:
		l = zerolog.New(consoleWriter(out)).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	default:
		l = zerolog.New(consoleWriter(out)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	mu.Lock()
	log = l
	mu.Unlock()
	zerolog.DefaultContextLogger = &l
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)
			return colorizeLevel(level)
		},
		FormatMessage: func(i interface{}) string {
			msg, _ := i.(string)
			return colorize(msg, cyan)
		},
		FormatFieldName: func(i interface{}) string {
			return colorize(fmt.Sprint(i)+":", gray)
		},
		FormatFieldValue: func(i interface{}) string {
			switch v := i.(type) {
			case string:
				return colorize(v, blue)
			case json.Number:
				return colorize(v.String(), blue)
			default:
				return colorize(fmt.Sprint(v), blue)
			}
		},
	}
}

// ANSI color codes
const (
	gray  = "\x1b[37m"
	blue  = "\x1b[34m"
	cyan  = "\x1b[36m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

func colorize(s, color string) string {
	return color + s + reset
}

func colorizeLevel(level string) string {
	switch level {
	case "debug":
		return colorize("DBG", gray)
	case "info":
		return colorize("INF", blue)
	case "warn":
		return colorize("WRN", cyan)
	case "error":
		return colorize("ERR", red)
	case "fatal":
		return colorize("FTL", red)
	default:
		return colorize(level, blue)
	}
}

// Get returns the global logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// WithComponent returns the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}
