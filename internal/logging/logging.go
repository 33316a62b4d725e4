package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the root logger. Console output always; when filePath is
// non-empty, a size-rotated JSON copy is written there as well.
func New(level, filePath string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var w io.Writer = console
	if filePath != "" {
		w = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
