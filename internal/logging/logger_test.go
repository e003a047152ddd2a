package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Debug(format string, args ...any) { c.record("DEBUG", format, args...) }
func (c *captureLogger) Info(format string, args ...any)  { c.record("INFO", format, args...) }
func (c *captureLogger) Warn(format string, args ...any)  { c.record("WARN", format, args...) }
func (c *captureLogger) Error(format string, args ...any) { c.record("ERROR", format, args...) }

func (c *captureLogger) record(level, format string, args ...any) {
	c.lines = append(c.lines, level+" "+fmt.Sprintf(format, args...))
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(nil))

	var typed *captureLogger
	assert.True(t, IsNil(typed))

	assert.False(t, IsNil(&captureLogger{}))
	assert.False(t, IsNil(Nop()))
}

func TestOrNopNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	var typed *captureLogger
	nop := OrNop(typed)
	assert.NotNil(t, nop)
	nop.Info("must not panic")

	c := &captureLogger{}
	assert.Equal(t, Logger(c), OrNop(c))
}

func TestMultiFansOut(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}

	m := Multi(a, nil, b)
	m.Info("hello %s", "world")
	m.Error("boom")

	assert.Equal(t, []string{"INFO hello world", "ERROR boom"}, a.lines)
	assert.Equal(t, b.lines, a.lines)
}

func TestMultiCollapsesTrivialCases(t *testing.T) {
	assert.Equal(t, Nop(), Multi())
	assert.Equal(t, Nop(), Multi(nil, nil))

	only := &captureLogger{}
	assert.Equal(t, Logger(only), Multi(only))
}

func TestMultiFlattensNested(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}
	m := Multi(Multi(a, b), a)
	m.Warn("w")
	assert.Len(t, a.lines, 2)
	assert.Len(t, b.lines, 1)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", levelString(LevelDebug))
	assert.Equal(t, "ERROR", levelString(LevelError))
	assert.Equal(t, "UNKNOWN", levelString(Level(99)))
}
