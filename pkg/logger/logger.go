package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with the application's field helpers.
type Logger struct {
	zap *zap.Logger
}

// New creates a logger with the given level ("debug", "info", "warn",
// "error") and encoding ("json" or "console").
func New(level, encoding string) (*Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	if encoding != "" {
		cfg.Encoding = encoding
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &Logger{zap: zapLogger}, nil
}

// Field creates a field with an arbitrary value.
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

// StringField creates a string field.
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field.
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// ErrorField creates a field from an error.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
