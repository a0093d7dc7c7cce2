package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initLogger sends logs to stderr and to a timestamped file under dir.
func initLogger(dir string, verbose int) (*os.File, error) {
	level := zerolog.InfoLevel
	if verbose > 0 {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	if dir == "" {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create log dir %s", dir)
	}
	name := filepath.Join(dir, fmt.Sprintf("reroller_%s.log", time.Now().Format("20060102_150405")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", name)
	}

	var w io.Writer = zerolog.MultiLevelWriter(console, f)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return f, nil
}
