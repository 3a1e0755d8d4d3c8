package logging

import (
	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
)

// levelTracker is a zapcore.Core that records whether anything at warn level
// or above was ever logged. It writes nothing itself.
type levelTracker struct {
	zapcore.LevelEnabler
	hadWarnings *atomic.Bool
	hadErrors   *atomic.Bool
}

func (t *levelTracker) With(fields []zapcore.Field) zapcore.Core {
	return t
}

func (t *levelTracker) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if t.Enabled(entry.Level) {
		return ce.AddCore(entry, t)
	}
	return ce
}

func (t *levelTracker) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel && t.hadWarnings != nil {
		t.hadWarnings.Store(true)
	}
	if entry.Level >= zapcore.ErrorLevel && t.hadErrors != nil {
		t.hadErrors.Store(true)
	}
	return nil
}

func (t *levelTracker) Sync() error {
	return nil
}
