package hostenv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/streamingfast/logging"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
)

const maxRequestBody = 64 * 1024

// Server exposes the classifier over HTTP.
type Server struct {
	*shutter.Shutter

	addr       string
	classifier *Classifier
	httpServer *http.Server
	listener   net.Listener
}

func NewServer(addr string, classifier *Classifier) *Server {
	s := &Server{
		Shutter:    shutter.New(),
		addr:       addr,
		classifier: classifier,
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.OnTerminating(func(err error) {
		zlog.Info("shutting down http server", zap.Error(err))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			zlog.Warn("http server did not shut down cleanly", zap.Error(err))
		}
	})

	return s
}

// Listen binds the configured address. Split from Serve so callers can read
// the bound address before requests arrive.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve handles requests until the server is shut down. It listens first
// if Listen was not called.
func (s *Server) Serve() {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			s.Shutdown(err)
			return
		}
	}

	zlog.Info("serving classification requests", zap.String("addr", s.Addr()))

	go func() {
		err := s.httpServer.Serve(s.listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.Shutdown(err)
	}()
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/classify", s.handleClassify)
	mux.HandleFunc("/v1/tags", s.handleTags)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return withRequestLogger(mux)
}

func withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zlog.With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(logging.WithLogger(r.Context(), logger)))
	})
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	logger := logging.Logger(r.Context(), zlog)

	var runtime Runtime
	switch r.Method {
	case http.MethodGet:
		runtime = RequestRuntime{Request: r}

	case http.MethodPost:
		body, err := decodeClassifyBody(w, r)
		if err != nil {
			logger.Debug("invalid classify body", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request body: %s", err)})
			return
		}
		// Pages often post only the capability flags.
		if body.UA == "" {
			body.UA = r.UserAgent()
		}
		runtime = body

	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	report := s.classifier.ClassifyRuntime(runtime)
	logger.Debug("classified request",
		zap.Stringer("full", report.Full.Tag),
		zap.Stringer("broad", report.Broad.Category))

	writeJSON(w, http.StatusOK, report)
}

// decodeClassifyBody reads exactly one JSON object from the request body.
func decodeClassifyBody(w http.ResponseWriter, r *http.Request) (StaticRuntime, error) {
	var body StaticRuntime
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return StaticRuntime{}, err
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return StaticRuntime{}, errors.New("body must contain a single JSON object")
	}
	return body, nil
}

// TagInfo is one entry of the /v1/tags listing.
type TagInfo struct {
	Tag      EnvironmentTag `json:"tag"`
	Action   string         `json:"action"`
	Evidence []string       `json:"evidence"`
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	tags := AllTags()
	infos := make([]TagInfo, 0, len(tags))
	for _, tag := range tags {
		infos = append(infos, TagInfo{
			Tag:      tag,
			Action:   ActionFor(tag).Summary,
			Evidence: EvidenceLines(Explain(tag)),
		})
	}

	writeJSON(w, http.StatusOK, infos)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Debug("failed to write response", zap.Error(err))
	}
}
