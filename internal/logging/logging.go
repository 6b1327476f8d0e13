package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to w. Debug mode logs everything with
// caller information; otherwise only errors are written, so w can carry a
// machine-readable report alongside the log.
func New(w io.Writer, debug bool) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	level := zapcore.ErrorLevel
	var opts []zap.Option
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
		opts = append(opts, zap.AddCaller())
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core, opts...).Sugar()
}
