package logger

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// globalLogger 缓存全局 zap.Logger，避免在业务代码里重复创建实例。
	globalLogger *zap.Logger
	// once 确保初始化逻辑只执行一次。
	once sync.Once
)

// Options 描述日志初始化时可配置的参数。
type Options struct {
	Level      string
	Encoding   string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Init 初始化全局日志记录器，保证在多次调用时只执行一次构建逻辑。
// 如果初始化失败会返回错误，供上层决定是否降级或退出。
func Init() (*zap.Logger, error) {
	var initErr error
	once.Do(func() {
		opts := loadOptionsFromEnv()
		logger, err := buildLogger(opts)
		if err != nil {
			initErr = err
			return
		}
		globalLogger = logger
	})

	if initErr != nil {
		return nil, initErr
	}
	if globalLogger == nil {
		return nil, errors.New("logger not initialized")
	}
	return globalLogger, nil
}

// L 返回全局 zap.Logger，如果尚未初始化则尝试自动初始化。
func L() *zap.Logger {
	if globalLogger != nil {
		return globalLogger
	}
	logger, err := Init()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// S 返回 SugaredLogger，业务代码里带字段打点时更顺手。
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync 刷新缓冲的日志条目，进程退出前调用。
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func loadOptionsFromEnv() Options {
	opts := Options{
		Level:      strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		Encoding:   strings.ToLower(strings.TrimSpace(os.Getenv("LOG_ENCODING"))),
		FilePath:   strings.TrimSpace(os.Getenv("LOG_FILE")),
		MaxSize:    envPositiveInt("LOG_MAX_SIZE_MB", 64),
		MaxBackups: envPositiveInt("LOG_MAX_BACKUPS", 5),
		MaxAge:     envPositiveInt("LOG_MAX_AGE_DAYS", 14),
		Compress:   os.Getenv("LOG_COMPRESS") == "1",
	}
	if opts.Level == "" {
		opts.Level = "info"
	}
	if opts.Encoding == "" {
		opts.Encoding = "json"
	}
	return opts
}

func buildLogger(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(opts.Level); err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if opts.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if opts.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
		}
		sinks = append(sinks, zapcore.AddSync(rotator))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller()), nil
}

func envPositiveInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
