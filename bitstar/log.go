package bitstar

import (
	"github.com/edaniels/golog"
	"go.uber.org/zap"
)

// Logger is the structured logging surface the core writes to, matching
// the golog.Logger interface the teacher's motionplan package calls
// throughout (mp.logger.Debugf/Infof). A *zap.SugaredLogger satisfies it
// directly; NewZapLogger and NewDevelopmentLogger are convenience
// constructors for callers who don't already have one handy.
type Logger interface {
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// NewZapLogger wraps an existing *zap.Logger for use by Solve.
func NewZapLogger(l *zap.Logger) Logger {
	return l.Sugar()
}

// NewDevelopmentLogger builds a golog development logger, for callers
// that already depend on golog (as teacher callers do) rather than zap
// directly.
func NewDevelopmentLogger(name string) Logger {
	return golog.NewDevelopmentLogger(name)
}

// noopLogger discards everything; used when Solve is called without a
// Logger configured.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{})  {}
func (noopLogger) Debugw(string, ...interface{})  {}
func (noopLogger) Infof(string, ...interface{})   {}
func (noopLogger) Infow(string, ...interface{})   {}
func (noopLogger) Warnf(string, ...interface{})   {}
func (noopLogger) Warnw(string, ...interface{})   {}
func (noopLogger) Errorf(string, ...interface{})  {}
func (noopLogger) Errorw(string, ...interface{})  {}
