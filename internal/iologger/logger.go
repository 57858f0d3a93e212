// Package iologger sets up the default slog logger of ccslim.
package iologger

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ccslim/ccslim/pkg/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "ccslim.log"

// logFile is the file opened by the last Init call, if any.
var logFile *os.File

// Init replaces the default slog logger according to cfg. With the "file"
// destination the log goes to LogFile in logDir, truncated unless append
// is true. A file opened by an earlier call is closed.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	var w io.Writer
	var f *os.File

	switch cfg.Destination {
	case "stdout":
		w = os.Stdout
	case "file":
		path := filepath.Join(logDir, LogFile)
		flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		var err error
		f, err = os.OpenFile(path, flag, 0644)
		if err != nil {
			return CreateLogFileError(path, err)
		}
		w = f
	default:
		w = os.Stderr
	}

	slog.SetDefault(slog.New(newHandler(w, cfg)))

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := parseLevel(cfg.Level)
	switch cfg.Format {
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  time.TimeOnly,
			NoColor:     !isTerminal(w),
			ReplaceAttr: replaceNaN,
		})
	case "text":
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceNaN,
		})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceNaN,
		})
	}
}

// replaceNaN logs missing values as "NaN"; JSON has no encoding for them.
func replaceNaN(_ []string, a slog.Attr) slog.Attr {
	v := a.Value
	if v.Kind() == slog.KindFloat64 && math.IsNaN(v.Float64()) {
		a.Value = slog.StringValue("NaN")
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
