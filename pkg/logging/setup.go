package logging

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogOpts struct {
	Verbose bool

	// Optional flags flipped when a warning or error is logged, so the CLI
	// can pick its exit code after a build. Set them before any file
	// processing begins.
	HadWarnings *atomic.Bool
	HadErrors   *atomic.Bool
}

// NewLogger builds the process logger. Verbose switches to the development
// config and enables debug-level output; both configs log to stderr.
func (opts LogOpts) NewLogger() *zap.Logger {
	var zapCfg zap.Config
	if opts.Verbose {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zapCfg.EncoderConfig.TimeKey = zapcore.OmitKey
	}
	zapCfg.OutputPaths = []string{"stderr"}

	log, err := zapCfg.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		if opts.HadWarnings == nil && opts.HadErrors == nil {
			return core
		}
		return zapcore.NewTee(core, &levelTracker{
			LevelEnabler: zapcore.WarnLevel,
			hadWarnings:  opts.HadWarnings,
			hadErrors:    opts.HadErrors,
		})
	}))
	if err != nil {
		panic(err)
	}
	return log
}
