package bitstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopLoggerSatisfiesLogger(t *testing.T) {
	var l Logger = noopLogger{}
	assert.NotPanics(t, func() {
		l.Debugf("x %d", 1)
		l.Debugw("x", "k", 1)
		l.Infof("x %d", 1)
		l.Infow("x", "k", 1)
		l.Warnf("x %d", 1)
		l.Warnw("x", "k", 1)
		l.Errorf("x %d", 1)
		l.Errorw("x", "k", 1)
	})
}

func TestNewDevelopmentLoggerSatisfiesLogger(t *testing.T) {
	var l Logger = NewDevelopmentLogger("test")
	assert.NotNil(t, l)
}
