// Package logger holds the process-wide zap logger. Packages log through a
// Scope named after their component so console and file output show where a
// line came from ("model", "layout", "animate", ...).
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the root logger. It discards everything until Init is called, so
// packages can log from tests without setup.
var Log = zap.NewNop()

// Sugar is the sugared form of Log.
var Sugar = Log.Sugar()

// FileConfig controls the rotating log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig rotates path at 20 MB and keeps two compressed backups
// for a week.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init sets up console logging at level and, when logFile is set, a rotating
// file alongside it.
func Init(level string, logFile string) error {
	fileCfg := FileConfig{}
	if logFile != "" {
		fileCfg = DefaultFileConfig(logFile)
	}
	return InitWithFileConfig(level, fileCfg, true)
}

// InitWithFileConfig replaces Log. With consoleOutput false and no file path
// the logger discards everything.
func InitWithFileConfig(level string, fileCfg FileConfig, consoleOutput bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var cores []zapcore.Core
	if consoleOutput {
		enc := encoderConfig(zapcore.TimeEncoderOfLayout("15:04:05.000"), zapcore.CapitalColorLevelEncoder)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), lvl))
	}
	if fileCfg.Path != "" {
		w := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}
		enc := encoderConfig(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl))
	}

	if len(cores) == 0 {
		Log = zap.NewNop()
	} else {
		Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	}
	Sugar = Log.Sugar()
	return nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// ParseLevel converts a level name to zapcore.Level. An empty name is info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

// Scope is a component name. Its methods resolve against Log at call time,
// so a Scope held in a package variable picks up a later Init.
type Scope string

// Component returns the Scope for a subsystem.
func Component(name string) Scope {
	return Scope(name)
}

// Logger returns Log named after the component.
func (s Scope) Logger() *zap.Logger {
	return Log.Named(string(s))
}

func (s Scope) caller() *zap.Logger {
	return s.Logger().WithOptions(zap.AddCallerSkip(1))
}

func (s Scope) Debug(msg string, fields ...zap.Field) { s.caller().Debug(msg, fields...) }
func (s Scope) Info(msg string, fields ...zap.Field)  { s.caller().Info(msg, fields...) }
func (s Scope) Warn(msg string, fields ...zap.Field)  { s.caller().Warn(msg, fields...) }
func (s Scope) Error(msg string, fields ...zap.Field) { s.caller().Error(msg, fields...) }

func root() *zap.Logger {
	return Log.WithOptions(zap.AddCallerSkip(1))
}

// Debug, Info, Warn and Error log on the unnamed root logger; cmd/ uses them
// before any component exists.

func Debug(msg string, fields ...zap.Field) { root().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { root().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { root().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { root().Error(msg, fields...) }
