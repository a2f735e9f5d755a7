package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// newTestLogger writes JSON entries to an in-memory buffer.
func newTestLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), buf, zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core)}, buf
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(LogConfig{Level: "debug", Format: format, OutputPaths: []string{"stdout"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_BadOutputPath(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir/for/sure/log.txt"}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNewDefaultLogger_NotNil(t *testing.T) {
	assert.NotNil(t, NewDefaultLogger())
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg", String("k", "v"))
	l.Warn("msg")
	l.Error("msg", Err(errors.New("x")))
	assert.Equal(t, l, l.With(Int("n", 1)))
	assert.Equal(t, l, l.Named("child"))
	assert.NoError(t, l.Sync())
}

func TestZapLogger_WritesTypedFields(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Info("region analysed",
		String("region", "Львівська область"),
		Int("points", 12),
		Float64("total", 74.5),
		Bool("should_build", true),
		Duration("elapsed", 15*time.Millisecond),
		Strings("objects", []string{"НПП Сколівські Бескиди"}),
	)

	out := buf.String()
	assert.Contains(t, out, `"msg":"region analysed"`)
	assert.Contains(t, out, `"points":12`)
	assert.Contains(t, out, `"total":74.5`)
	assert.Contains(t, out, `"should_build":true`)
	assert.Contains(t, out, "Львівська область")
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("analysis").With(String("snapshot", "abc"))

	l.Warn("capacity not parseable", String("point", "База Ромашка"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "analysis", entry.LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "abc", ctx["snapshot"])
	assert.Equal(t, "База Ромашка", ctx["point"])
}

func TestErr_NilIsSafe(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "", f.Value)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	SetDefault(nil)

	Default().Info("hello")
	assert.Equal(t, 1, logs.Len())
}

//Personal.AI order the ending
