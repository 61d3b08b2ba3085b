package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/grovetools/watchlist/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "save failed",
		Data: logrus.Fields{
			"component": "watchlist-session",
			"key":       "watchlist-abc",
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "2026-08-20 10:30:00")
	assert.Contains(t, line, "[WARN]")
	assert.Contains(t, line, "[watchlist-session]")
	assert.Contains(t, line, "save failed")
	assert.Contains(t, line, "key=watchlist-abc")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTextFormatterSimplePreset(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{
		DisableTimestamp: true,
		DisableComponent: true,
	}}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "hello",
		Data:    logrus.Fields{"component": "x"},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Equal(t, "[INFO] hello\n", line)
}

func TestNewLoggerSingleton(t *testing.T) {
	testutil.ChdirTemp(t)

	a := NewLogger("test-component")
	b := NewLogger("test-component")
	assert.Same(t, a, b, "one logger per component")

	c := NewLogger("other-component")
	assert.NotSame(t, a, c)
}

func TestNewLoggerLevelFromEnv(t *testing.T) {
	testutil.ChdirTemp(t)
	t.Setenv("WATCHLIST_LOG_LEVEL", "debug")

	logger := NewLogger("env-level-component")
	assert.Equal(t, logrus.DebugLevel, logger.Logger.GetLevel())
}
