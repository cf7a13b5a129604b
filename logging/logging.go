package logging

import (
	"io"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu        sync.RWMutex
	sugar     = zap.NewNop().Sugar()
	debugMode bool
)

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		setLogger(zap.NewNop(), false)
		return func() {}, nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{filename}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	// Bubble Tea and anything else on the stdlib logger share the file.
	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	setLogger(logger, true)
	cleanup = func() {
		_ = logger.Sync()
		tf.Close()
		setLogger(zap.NewNop(), false)
	}
	return cleanup, nil
}

func setLogger(l *zap.Logger, debug bool) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
	debugMode = debug
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// IsDebugMode reports whether a debug log file is active.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugMode
}

func Debug(msg string) { get().Debug(msg) }
func Debugf(format string, args ...any) { get().Debugf(format, args...) }
func Infof(format string, args ...any) { get().Infof(format, args...) }
func Warnf(format string, args ...any) { get().Warnf(format, args...) }
func Errorf(format string, args ...any) { get().Errorf(format, args...) }
