// Package httpx serves the sanitizer over HTTP.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/njchilds90/htmlsanitizer/v2"
)

// DefaultMaxBodyBytes bounds request bodies when Options.MaxBodyBytes is
// zero.
const DefaultMaxBodyBytes = 1 << 20

// Options configures NewRouter.
type Options struct {
	Policy       *htmlsanitizer.Policy
	Logger       hclog.Logger
	MaxBodyBytes int64
	Timeout      time.Duration
}

// NewRouter returns an http.Handler with these routes:
//
//	POST /sanitize  body is markup, response is sanitized markup
//	POST /strip     body is markup, response is plain text
//	GET  /healthz   liveness probe
func NewRouter(opts Options) http.Handler {
	if opts.Policy == nil {
		opts.Policy = htmlsanitizer.DefaultPolicy()
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &server{opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	r.Get("/healthz", s.health)
	r.Post("/sanitize", s.sanitize)
	r.Post("/strip", s.strip)
	return r
}

type server struct {
	opts Options
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) sanitize(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	out, err := htmlsanitizer.Sanitize(body, s.opts.Policy)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *server) strip(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	out, err := htmlsanitizer.StripTags(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return "", false
	}
	return string(body), true
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.opts.Logger.Error("sanitize failed", "path", r.URL.Path, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
