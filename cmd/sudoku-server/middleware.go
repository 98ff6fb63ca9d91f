package main

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"github.com/rs/cors"
)

type Middleware func(http.Handler) http.Handler

func useMiddleware(s *http.ServeMux, mws ...Middleware) http.Handler {
	var handler http.Handler = s
	for _, mw := range mws {
		handler = mw(handler)
	}
	return handler
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Hijack keeps websocket upgrades working behind the logging wrapper.
func (w *loggingResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Infof("--> %s %s", r.Method, r.URL.String())
		wrapped := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(wrapped, r)
		code := wrapped.statusCode
		log.Infof("<-- %d %s", code, http.StatusText(code))
	})
}

var corsMiddleware Middleware = cors.New(cors.Options{
	AllowOriginFunc: func(origin string) bool {
		return true
	},
	AllowedMethods: []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
	},
	AllowedHeaders:   []string{"*"},
	AllowCredentials: true,
}).Handler
