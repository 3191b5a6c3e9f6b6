package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger writes human-readable lines to out and, when file is set,
// JSON lines to a rotated log file. If the log directory cannot be
// created the logger stays console-only and says so once.
func SetupLogger(out io.Writer, level, file string) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	var w io.Writer = console
	var fileErr error
	if file != "" {
		fileErr = os.MkdirAll(filepath.Dir(file), 0o755)
	}
	if file != "" && fileErr == nil {
		w = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = logger
	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("file", file).Msg("file logging disabled")
	}
	return logger
}
