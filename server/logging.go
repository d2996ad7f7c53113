package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type requestLogKey struct{}

// requestLog collects what a handler did so the access line can report it.
type requestLog struct {
	messageID string
	messages  int
	listed    bool
}

func noteCreated(r *http.Request, id string) {
	if rl, ok := r.Context().Value(requestLogKey{}).(*requestLog); ok {
		rl.messageID = id
	}
}

func noteListed(r *http.Request, n int) {
	if rl, ok := r.Context().Value(requestLogKey{}).(*requestLog); ok {
		rl.messages = n
		rl.listed = true
	}
}

// Logger writes one line per request. Client errors log at warn and server
// errors at error. Message requests also carry the stored id on POST and
// the list length on GET.
func Logger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			rl := &requestLog{}
			r = r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl))

			defer func() {
				status := ww.Status()
				evt := logger.Info()
				switch {
				case status >= http.StatusInternalServerError:
					evt = logger.Error()
				case status >= http.StatusBadRequest:
					evt = logger.Warn()
				}
				evt = evt.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context()))
				if rl.messageID != "" {
					evt = evt.Str("message_id", rl.messageID)
				}
				if rl.listed {
					evt = evt.Int("messages", rl.messages)
				}
				evt.Msg("request completed")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
