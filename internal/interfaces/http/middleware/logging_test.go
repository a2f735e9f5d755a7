package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
)

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte("body"))
	})
}

func TestRequestLogging_Levels(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		level zapcore.Level
		msg   string
	}{
		{"ok", http.StatusOK, zapcore.InfoLevel, "HTTP request completed"},
		{"client error", http.StatusNotFound, zapcore.WarnLevel, "HTTP request completed with client error"},
		{"server error", http.StatusServiceUnavailable, zapcore.ErrorLevel, "HTTP request completed with server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := RequestLogging(logging.NewLoggerFromCore(core), DefaultLoggingConfig())(statusHandler(tt.code))

			r := httptest.NewRequest(http.MethodGet, "/api/v1/analyze/x?y=1", nil)
			h.ServeHTTP(httptest.NewRecorder(), r)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.msg, entry.Message)
			fields := entry.ContextMap()
			assert.Equal(t, "/api/v1/analyze/x?y=1", fields["path"])
			assert.EqualValues(t, tt.code, fields["status"])
			assert.EqualValues(t, 4, fields["bytes"])
		})
	}
}

func TestRequestLogging_SlowRequest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := LoggingConfig{SlowThreshold: time.Millisecond}
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
	})
	RequestLogging(logging.NewLoggerFromCore(core), cfg)(slow).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/analyze-all", nil))

	assert.Equal(t, 1, logs.FilterMessage("HTTP request completed (slow)").Len())
}

func TestRequestLogging_SkipPathsAndRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := chimw.RequestID(RequestLogging(logging.NewLoggerFromCore(core), DefaultLoggingConfig())(statusHandler(http.StatusOK)))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, 0, logs.Len())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil)
	r.Header.Set(chimw.RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-42", logs.All()[0].ContextMap()["request_id"])
}

//Personal.AI order the ending
