package web

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/mordilloSan/appsettings/common/ipc"
)

// maxBodyBytes bounds a single HTTP invoke body.
const maxBodyBytes = 64 * 1024

// Config holds router configuration.
type Config struct {
	Verbose    bool
	Dispatcher *ipc.Dispatcher
}

// BuildRouter constructs and returns the main HTTP handler.
func BuildRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /ws", WebSocketHandler(cfg.Dispatcher))
	mux.HandleFunc("GET /api/commands", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, cfg.Dispatcher.Registry().List())
	})
	mux.HandleFunc("POST /api/invoke/{command}", invokeHandler(cfg.Dispatcher))

	var handler http.Handler = mux
	if cfg.Verbose {
		handler = loggerMiddleware(handler)
	}
	handler = recoveryMiddleware(handler)
	return handler
}

// invokeHandler runs one command. The optional body is a JSON array of string
// args.
func invokeHandler(d *ipc.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		command := r.PathValue("command")
		requestID := r.Header.Get("X-Request-ID")

		var args []string
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			WriteError(w, http.StatusBadRequest, requestID, "bad_request:read body: "+err.Error())
			return
		}
		if len(body) > maxBodyBytes {
			WriteError(w, http.StatusRequestEntityTooLarge, requestID, "bad_request:request body too large")
			return
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &args); err != nil {
				WriteError(w, http.StatusBadRequest, requestID, "bad_request:body must be a JSON array of strings")
				return
			}
		}

		WriteResponse(w, d.Dispatch(r.Context(), "http", ipc.Request{
			ID:      requestID,
			Command: command,
			Args:    args,
		}))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack is required by the websocket upgrader.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.DebugKV("http request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start).String())
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logger.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				WriteError(w, http.StatusInternalServerError, r.Header.Get("X-Request-ID"), "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// HTTPErrorLogAdapter routes http.Server.ErrorLog lines into go-logger, one
// structured warning per line. It never fails a write.
type HTTPErrorLogAdapter struct{}

func (HTTPErrorLogAdapter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			logger.WarnKV("http server error", "msg", strings.TrimPrefix(line, "http: "))
		}
	}
	return len(p), nil
}
