package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	service string
	outputs []string
}

// Option настраивает логгер
type Option func(*options)

// WithService добавляет поле service в каждую запись (api и worker пишут в один сборщик)
func WithService(name string) Option {
	return func(o *options) { o.service = name }
}

// WithOutput заменяет stdout на указанные пути
func WithOutput(paths ...string) Option {
	return func(o *options) { o.outputs = paths }
}

// New создает zap логгер: json для продакшена, цветная консоль для debug.
// Неизвестный уровень трактуется как info.
func New(level string, opts ...Option) (*zap.Logger, error) {
	o := options{outputs: []string{"stdout"}}
	for _, opt := range opts {
		opt(&o)
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = o.outputs
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// без сэмплирования: каждая запись о переходе попадает в лог
	cfg.Sampling = nil

	if zapLevel == zapcore.DebugLevel {
		cfg.Development = true
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if o.service != "" {
		cfg.InitialFields = map[string]interface{}{"service": o.service}
	}

	return cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}
