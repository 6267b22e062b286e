// Package logger 提供全局 zap 日志
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalBase *zap.Logger

// Init 初始化全局日志，env 为 production 时使用 JSON 编码
// 同时把标准库 log 的输出重定向到 zap
func Init(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(env, "prod") || strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(base)
	_ = zap.RedirectStdLog(base)

	globalBase = base
	return base, nil
}

// L 返回全局 logger，未初始化时返回 Nop
func L() *zap.Logger {
	if globalBase == nil {
		return zap.NewNop()
	}
	return globalBase
}

// Sync 刷新缓冲日志
func Sync() {
	if globalBase != nil {
		_ = globalBase.Sync()
	}
}

// GORMWriter 把 GORM 日志写入 zap
type GORMWriter struct{}

// Printf 实现 gorm logger.Writer
func (GORMWriter) Printf(format string, v ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, v...), "\r\n")
	L().Info(msg, zap.String("component", "gorm"))
}
