package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used by the blog service.
// - zap underneath (console encoder, RFC3339 timestamps)
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newSugar(os.Stdout)
)

func newSugar(w io.Writer) *zap.SugaredLogger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newSugar(w)
}

// With returns a child logger carrying the given key/value pairs.
func With(kv ...interface{}) *zap.SugaredLogger {
	return current().With(kv...)
}

func Debugf(format string, v ...interface{}) { current().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { current().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { current().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { current().Errorf(format, v...) }

// Fatalf logs and exits with status 1.
func Fatalf(format string, v ...interface{}) {
	current().Fatalf(format, v...)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	current().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { current().Debug(v) }
func Info(v string)  { current().Info(v) }
func Warn(v string)  { current().Warn(v) }
func Error(v string) { current().Error(v) }

// Sync flushes buffered entries; call before exit.
func Sync() { _ = current().Sync() }

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}
