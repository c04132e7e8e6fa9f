package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger defaults to a no-op until Init runs, so library code can log
// unconditionally.
var Logger = zap.NewNop()

func Init(environment string) error {
	var err error
	if environment == "production" {
		Logger, err = buildProduction()
	} else {
		Logger, err = buildDevelopment()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(Logger)

	return nil
}

func buildDevelopment() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	applyEncoderKeys(&config.EncoderConfig)

	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// buildProduction writes JSON to stdout and to a size-rotated file.
func buildProduction() (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	applyEncoderKeys(&encoderConfig)
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	rotator := &lumberjack.Logger{
		Filename:   "logs/server.log",
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(rotator), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), zap.InfoLevel),
	)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func applyEncoderKeys(cfg *zapcore.EncoderConfig) {
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.CallerKey = "caller"
	cfg.StacktraceKey = "stacktrace"
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func WithRequestID(requestID string) *zap.Logger {
	return Logger.With(zap.String("request_id", requestID))
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}
