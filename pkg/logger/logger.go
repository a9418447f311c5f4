package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	level  = new(slog.LevelVar)
	Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
)

type Options struct {
	Level string
	File  string
}

// Configure sets the process log level and optionally mirrors output to
// a file. Errors are collected so a bad level still leaves a working
// logger behind.
func Configure(opts Options) error {
	var levelErr error
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := ParseLevel(opts.Level)
		if err != nil {
			levelErr = err
		} else {
			level.Set(parsed)
		}
	}

	var fileErr error
	if strings.TrimSpace(opts.File) != "" {
		if mkErr := os.MkdirAll(filepath.Dir(opts.File), 0o755); mkErr != nil {
			fileErr = mkErr
		} else if file, openErr := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); openErr != nil {
			fileErr = openErr
		} else {
			writer := io.MultiWriter(os.Stdout, file)
			Logger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
		}
	}

	return errors.Join(levelErr, fileErr)
}

func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

func Enabled(l slog.Level) bool {
	return level.Level() <= l
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
