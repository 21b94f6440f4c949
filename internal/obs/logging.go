package obs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls logger construction.
type LogConfig struct {
	Format string
	Level  string
	File   string
	// Out defaults to stderr so log lines never interleave with the printed total.
	Out io.Writer
}

// NewLogger configures a zerolog logger using the provided format and level.
// When File is set, JSON lines are additionally written to a size-rotated file.
func NewLogger(cfg LogConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := cfg.Out
	if writer == nil {
		writer = os.Stderr
	}
	var out io.Writer = writer
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "console" || format == "text" {
		out = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}
	if file := strings.TrimSpace(cfg.File); file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
