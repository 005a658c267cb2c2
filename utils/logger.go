package utils

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// NewLogger returns a text logger writing to w at the named level
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "[NewLogger] invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
