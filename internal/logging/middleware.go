package logging

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Middleware injects a LogData into every request context and logs request
// completion with method, path, status, and timing fields.
func Middleware(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		req = req.WithContext(WithLogData(req.Context(), logData))

		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(wrapped, req)

		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)
		logData.AddData("status", wrapped.status)
		logData.AddData("durationMs", time.Since(start).Milliseconds())
		logData.Log().Info("Http.Request.Complete")
	})
}

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
