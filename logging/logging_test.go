package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, InfoLevel, ParseLevel("info"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, FatalLevel, ParseLevel("fatal"))

	// Unknown names fall back to info.
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestFormatMessage(t *testing.T) {
	l := NewDefaultLoggerNoColor()

	msg := l.formatMessage(InfoLevel, nil, "hello")
	assert.Equal(t, "[INFO] hello", msg)

	msg = l.formatMessage(ErrorLevel, errors.New("boom"), "failed")
	assert.Equal(t, "[ERROR] failed: boom", msg)

	msg = l.formatMessage(InfoLevel, nil, "with fields", Fields{"n": 3})
	assert.Contains(t, msg, "[INFO] with fields")
	assert.Contains(t, msg, "n:3")
}

func TestWithFieldsMerges(t *testing.T) {
	base := NewDefaultLoggerNoColor().WithFields(Fields{"component": "analyzer"})
	child := base.WithFields(Fields{"frames": 12})

	d, ok := child.(*DefaultLogger)
	assert.True(t, ok)
	assert.Equal(t, "analyzer", d.fields["component"])
	assert.Equal(t, 12, d.fields["frames"])
}

func TestWithContext(t *testing.T) {
	l := NewDefaultLoggerNoColor()
	ctx := ContextWithFields(context.Background(), Fields{"request": "abc"})

	d, ok := l.WithContext(ctx).(*DefaultLogger)
	assert.True(t, ok)
	assert.Equal(t, "abc", d.fields["request"])

	// A context without fields returns the logger unchanged.
	assert.Same(t, Logger(l), l.WithContext(context.Background()))
}

func TestNoOpLoggerIsSafe(t *testing.T) {
	var l Logger = &NoOpLogger{}
	l.Debug("ignored")
	l.Error(errors.New("ignored"), "ignored", Fields{"k": "v"})
	assert.Same(t, l, l.WithFields(Fields{"k": "v"}))
}
