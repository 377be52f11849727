package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler keeps the last slog record for assertions.
type recordingHandler struct {
	record slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.record = r.Clone()
	return nil
}

func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(_ string) slog.Handler { return h }

func recordAttrs(r slog.Record) map[string]slog.Value {
	attrs := make(map[string]slog.Value)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	return attrs
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"created", http.MethodPost, "/api/promote-event", http.StatusCreated},
		{"not found", http.MethodGet, "/api/events/missing", http.StatusNotFound},
		{"server error", http.MethodPut, "/api/events/ev-1", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recordingHandler
			logger := slog.New(&rec)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(tt.method, "http://test"+tt.path, nil)
			rr := httptest.NewRecorder()
			LoggingMiddleware(logger, next).ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)
			require.Equal(t, "request", rec.record.Message)
			attrs := recordAttrs(rec.record)
			assert.Equal(t, tt.method, attrs["method"].String())
			assert.Equal(t, tt.path, attrs["path"].String())
			assert.Equal(t, int64(tt.status), attrs["status"].Int64())
			assert.GreaterOrEqual(t, attrs["duration_ms"].Int64(), int64(0))
		})
	}

	t.Run("implicit status defaults to 200", func(t *testing.T) {
		var rec recordingHandler
		logger := slog.New(&rec)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{}}`))
		})

		req := httptest.NewRequest(http.MethodGet, "http://test/api/events", nil)
		rr := httptest.NewRecorder()
		LoggingMiddleware(logger, next).ServeHTTP(rr, req)

		attrs := recordAttrs(rec.record)
		assert.Equal(t, int64(http.StatusOK), attrs["status"].Int64())
		assert.Equal(t, `{"data":{}}`, rr.Body.String())
	})
}
