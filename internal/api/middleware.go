package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger - аналог middleware.Logger на logrus
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				entry := log.WithFields(logrus.Fields{
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"duration":   time.Since(start).String(),
					"request_id": middleware.GetReqID(r.Context()),
				})
				if ww.Status() >= http.StatusInternalServerError {
					entry.Warn("HTTP запрос")
					return
				}
				entry.Info("HTTP запрос")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
