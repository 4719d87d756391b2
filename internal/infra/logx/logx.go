package logx

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel 是未配置 log_level 时的日志级别。
const DefaultLevel = "info"

// ParseLevel 只接受 debug/info/warn/error 四档（大小写不敏感）。
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", DefaultLevel:
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("log_level 只能是 debug|info|warn|error，实际是 %q", s)
	}
}

// New 构造写往 w 的 console 格式 logger（诊断信息走 stderr，不污染 stdout 的计时摘要）。
//
// w 需要自身并发安全或由调用方保证（os.Stderr 满足）；zap 会再包一层锁。
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}
