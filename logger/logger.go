// Package logger configures the process-wide go-logging backend.
package logger

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
)

const (
	LOG_FORMAT       = "%{time:2006-01-02 15:04:05.000} [%{level:.4s}] %{shortfile} %{message}"
	LOG_COLOR_FORMAT = "%{color}%{time:2006-01-02 15:04:05.000} [%{level:.4s}]%{color:reset} %{shortfile} %{message}"
)

// InitConsoleLog sends every module's records at or above levelString to w.
// Colors are used only when color is set.
func InitConsoleLog(w io.Writer, levelString string, color bool) error {
	level, err := logging.LogLevel(strings.ToUpper(levelString))
	if err != nil {
		return errors.Wrapf(err, "log level %q", levelString)
	}
	format := LOG_FORMAT
	if color {
		format = LOG_COLOR_FORMAT
	}
	backend := logging.AddModuleLevel(
		logging.NewBackendFormatter(
			logging.NewLogBackend(w, "", 0),
			logging.MustStringFormatter(format),
		),
	)
	backend.SetLevel(level, "")
	logging.SetBackend(backend)
	return nil
}
