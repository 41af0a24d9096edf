// Package logging configures the global zerolog logger for the mmc CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup initializes the global logger. Interactive sessions get a colored
// console writer on stderr; every run also appends JSON records to a
// size-rotated log file under logDir so destructive operations leave an
// audit trail. When debug is true the level drops to Debug.
func Setup(debug bool, logDir string) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	writers := []io.Writer{fileWriter(logDir)}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// fileWriter returns a rotating file sink. Rotation keeps the audit log
// bounded without external logrotate configuration.
func fileWriter(logDir string) io.Writer {
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return io.Discard
		}
		logDir = filepath.Join(home, "Library", "Logs", "mmc")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return io.Discard
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "mmc.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}
}
