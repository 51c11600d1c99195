package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the contracts.Logger implementation backed by zap.
type ZapLogger struct {
	mu     sync.RWMutex
	logger *zap.Logger
	level  zap.AtomicLevel
	file   *os.File // Open log file when the destination is FileLog.
}

// NewZapLogger creates a logger writing console-encoded entries to stderr.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &ZapLogger{
		logger: zap.New(newCore(zapcore.Lock(os.Stderr), level), zap.AddCaller(), zap.AddCallerSkip(2)),
		level:  level,
	}
}

// NewFromZap wraps an existing zap core, keeping its encoder and sink. The
// level is still controlled through SetLevel.
func NewFromZap(core zapcore.Core) contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	gated, err := zapcore.NewIncreaseLevelCore(core, level)
	if err != nil {
		// The core is more restrictive than info; keep it as is.
		gated = core
	}
	return &ZapLogger{
		logger: zap.New(gated, zap.AddCaller(), zap.AddCallerSkip(2)),
		level:  level,
	}
}

func newCore(ws zapcore.WriteSyncer, level zap.AtomicLevel) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), ws, level)
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns an empty field builder.
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the minimum level that is written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// SetDestination switches output between stderr and a file. FileLog requires
// a path; the file is created or appended to.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) error {
	var (
		ws   zapcore.WriteSyncer
		file *os.File
	)
	switch dest {
	case contracts.ConsoleLog:
		ws = zapcore.Lock(os.Stderr)
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			return fmt.Errorf("log destination %q needs a file path", dest)
		}
		f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		file = f
		ws = zapcore.Lock(f)
	default:
		return fmt.Errorf("unknown log destination %q", dest)
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	_ = z.logger.Sync()
	if z.file != nil {
		z.file.Close()
	}
	z.file = file
	z.logger = zap.New(newCore(ws, z.level), zap.AddCaller(), zap.AddCallerSkip(2))
	return nil
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger.Sync()
}

func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	z.mu.RLock()
	l := z.logger
	z.mu.RUnlock()

	ce := l.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(toZapFields(fields)...)
}

func toZapFields(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok && f.set {
			out = append(out, f.field)
		}
	}
	return out
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	}
	return zapcore.InfoLevel
}

// zapField implements contracts.Field
type zapField struct {
	field zap.Field
	set   bool
}

func newField(f zap.Field) contracts.Field {
	return &zapField{field: f, set: true}
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return newField(zap.Bool(key, val))
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return newField(zap.Int(key, val))
}

func (f *zapField) Float64(key string, val float64) contracts.Field {
	return newField(zap.Float64(key, val))
}

func (f *zapField) String(key string, val string) contracts.Field {
	return newField(zap.String(key, val))
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return newField(zap.Time(key, val))
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return newField(zap.Int64(key, val))
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return newField(zap.NamedError(key, val))
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return newField(zap.Uint64(key, val))
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return newField(zap.Uint8(key, val))
}

func (f *zapField) Binary(key string, val []byte) contracts.Field {
	return newField(zap.Ints(key, bytesToInts(val)))
}

// bytesToInts renders bytes as decimal numbers, matching how MIDI bytes are
// usually read.
func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
