package config

import (
	"context"
	"errors"
	"io"
	"time"

	"cdr.dev/slog/v3"
	"cdr.dev/slog/v3/sloggers/sloghuman"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// NewLogger builds the application logger writing human-readable lines to w.
func NewLogger(w io.Writer, level string) slog.Logger {
	logger := slog.Make(sloghuman.Sink(w))
	if level == "debug" {
		return logger.Leveled(slog.LevelDebug)
	}
	return logger.Leveled(slog.LevelInfo)
}

// GormLogger forwards GORM statements to slog.
type GormLogger struct {
	Logger        slog.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(logger slog.Logger) gormLogger.Interface {
	return &GormLogger{
		Logger:        logger.Named("gorm"),
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Logger.Info(ctx, msg, slog.F("data", data))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Logger.Warn(ctx, msg, slog.F("data", data))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Logger.Error(ctx, msg, slog.F("data", data))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []slog.Field{
		slog.F("source", utils.FileWithLineNum()),
		slog.F("elapsed", elapsed),
		slog.F("rows", rows),
		slog.F("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.Logger.Error(ctx, "query failed", append(fields, slog.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Logger.Warn(ctx, "slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.Logger.Debug(ctx, "query", fields...)
	}
}
