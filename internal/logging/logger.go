package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "talkwatch.log"

// Options controls where and how verbosely the application logs.
type Options struct {
	Level       string
	Dir         string
	Development bool
}

// New builds a sugared logger writing to stderr and, when Dir is set, to a
// rotating JSON log file. The returned closer flushes and closes the file.
func New(options Options) (*zap.SugaredLogger, func() error, error) {
	level, err := ParseLevel(options.Level)
	if err != nil {
		return nil, nil, err
	}

	consoleConfig := zap.NewProductionEncoderConfig()
	if options.Development {
		consoleConfig = zap.NewDevelopmentEncoderConfig()
	}
	consoleConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.Lock(os.Stderr), level),
	}

	var file *lumberjack.Logger
	if strings.TrimSpace(options.Dir) != "" {
		if err := os.MkdirAll(options.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   filepath.Join(options.Dir, logFileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	closer := func() error {
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger.Sugar(), closer, nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(value string) (zapcore.Level, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}
