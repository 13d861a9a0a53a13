// Package logger builds named zap SugaredLoggers with an optional rotating
// file sink. Loggers are cached per module name; SetLogConfig drops the cache
// so later GetLogger calls build from the new config.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Module names used as logger keys.
const (
	MODULE_KMEANS     = "[KMeans]"
	MODULE_QUANTIZER  = "[Quantizer]"
	MODULE_HMM        = "[HMM]"
	MODULE_CLASSIFIER = "[Classifier]"
	MODULE_STORE      = "[Store]"
	MODULE_CLI        = "[CLI]"
)

// Brief modes select a whole preset instead of individual fields.
const (
	LOG_MODE_DEV  = "DEV"
	LOG_MODE_PROD = "PROD"
)

// LogConfig describes one logging setup. Field tags match the `log` section
// of the CLI config file.
type LogConfig struct {
	BriefMode          string            `mapstructure:"brief_mode"`
	ModuleSpecialLevel map[string]string `mapstructure:"module_level"` // module name → level

	LogPath        string `mapstructure:"path"` // empty: console only
	LogLevel       string `mapstructure:"level"`
	RotationMaxAge int    `mapstructure:"max_age"`       // days
	RotationTime   int    `mapstructure:"rotation_time"` // hours
	RotationSize   int    `mapstructure:"rotation_size"` // MB
	ShowLine       bool   `mapstructure:"show_line"`
	LogInConsole   bool   `mapstructure:"console"`
}

// DefaultLogConfig returns the DEV or PROD preset.
func DefaultLogConfig(isDEV bool) *LogConfig {
	if isDEV {
		return &LogConfig{
			LogPath:        "./lvhmm.dev.log",
			LogLevel:       "DEBUG",
			RotationMaxAge: 1,
			RotationTime:   1,
			RotationSize:   10,
			ShowLine:       true,
			LogInConsole:   true,
		}
	}

	return &LogConfig{
		LogPath:        "./lvhmm.prod.log",
		LogLevel:       "INFO",
		RotationMaxAge: 7,
		RotationTime:   24,
		RotationSize:   30,
		ShowLine:       true,
		LogInConsole:   false,
	}
}

// adjustLogConfig resolves the brief mode and the per-module level override.
func adjustLogConfig(name string, lc *LogConfig) *LogConfig {
	if lc.BriefMode != "" {
		return DefaultLogConfig(lc.BriefMode != LOG_MODE_PROD)
	}

	newC := *lc
	newC.ModuleSpecialLevel = nil
	// config loaders may lower-case map keys
	for module, lvl := range lc.ModuleSpecialLevel {
		if strings.EqualFold(module, name) {
			newC.LogLevel = lvl
		}
	}

	return &newC
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a zap level; unknown
// strings fall back to INFO.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.DebugLevel
	case "WARN", "WARNING":
		return zap.WarnLevel
	case "ERROR":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// NewSugaredLogger builds a logger named name from lc.
func NewSugaredLogger(name string, lc *LogConfig) (*zap.SugaredLogger, error) {
	lcc := adjustLogConfig(name, lc)
	zapLevel := ParseLevel(lcc.LogLevel)
	priority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	var syncers []zapcore.WriteSyncer
	if lcc.LogPath != "" {
		rotation, err := rotatelogs.New(
			lcc.LogPath+".%Y%m%d%H",
			rotatelogs.WithRotationTime(time.Duration(lcc.RotationTime)*time.Hour),
			rotatelogs.WithRotationSize(int64(lcc.RotationSize)*1024*1024),
			rotatelogs.WithMaxAge(24*time.Hour*time.Duration(lcc.RotationMaxAge)),
		)
		if err != nil {
			return nil, fmt.Errorf("logger: rotation writer for %q: %w", lcc.LogPath, err)
		}
		syncers = append(syncers, zapcore.AddSync(rotation))
	}
	if lcc.LogInConsole || len(syncers) == 0 {
		syncers = append(syncers, zapcore.AddSync(os.Stderr))
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "line",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + level.CapitalString() + "]")
		},
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.NewMultiWriteSyncer(syncers...), priority)

	var opts []zap.Option
	if lcc.ShowLine {
		opts = append(opts, zap.AddCaller())
	}

	return zap.New(core, opts...).Named(name).Sugar(), nil
}

// Nop returns a logger that discards everything. Library packages default to it.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

var (
	loggers     = make(map[string]*zap.SugaredLogger)
	loggerMutex sync.Mutex
	logConfig   *LogConfig
)

// GetLogger returns the cached logger for name, building it on first use from
// the config installed by SetLogConfig (DEV preset when none was installed).
// A build failure degrades to a console-only logger.
func GetLogger(name string) *zap.SugaredLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}
	if logConfig == nil {
		logConfig = DefaultLogConfig(true)
	}
	l, err := NewSugaredLogger(name, logConfig)
	if err != nil {
		fallback := *logConfig
		fallback.LogPath = ""
		l, _ = NewSugaredLogger(name, &fallback)
		l.Warnf("falling back to console logging: %v", err)
	}
	loggers[name] = l

	return l
}

// SetLogConfig installs config for subsequent GetLogger calls and drops the
// cache so every module rebuilds its logger.
func SetLogConfig(config *LogConfig) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	for _, l := range loggers {
		_ = l.Sync()
	}
	logConfig = config
	loggers = make(map[string]*zap.SugaredLogger)
}
