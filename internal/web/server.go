package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"quotemark-cli/internal/logger"
	"quotemark-cli/internal/selsync"
	"quotemark-cli/internal/store"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

// Datastar v1 runtime, loaded by the browser from the CDN.
const datastarScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

type ServerConfig struct {
	Dir   string
	Mode  selsync.WriteMode
	Actor string

	// PollInterval is how often the labels dir is checked for changes made
	// outside this server (default 1s).
	PollInterval time.Duration
}

type Server struct {
	mu    sync.RWMutex
	cfg   ServerConfig
	store store.Store
	tmpl  *template.Template
	bc    *resourceBroadcaster
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	cfg.Actor = strings.TrimSpace(cfg.Actor)
	if cfg.Dir == "" {
		return nil, errors.New("web: dir is empty")
	}
	st := store.Store{Dir: filepath.Clean(cfg.Dir)}
	if err := st.Ensure(); err != nil {
		return nil, err
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	srv := &Server{cfg: cfg, store: st, tmpl: tmpl}
	srv.bc = newResourceBroadcaster(filepath.Join(st.Dir, "extracted_labels"), cfg.PollInterval)
	go srv.bc.watchLoop()
	return srv, nil
}

// Close stops the labels watcher. Open streams end with their requests.
func (s *Server) Close() {
	s.broadcaster().Stop()
}

func (s *Server) cfgSnapshot() ServerConfig {
	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	return cfg
}

func (s *Server) broadcaster() *resourceBroadcaster {
	s.mu.RLock()
	b := s.bc
	s.mu.RUnlock()
	return b
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /label/{posting}", s.handleLabelRedirect)
	mux.HandleFunc("GET /label/{posting}/{$}", s.handleLabelRedirect)
	mux.HandleFunc("GET /label/{posting}/stream", s.handleLabelStream)
	mux.HandleFunc("GET /label/{posting}/{field}", s.handleLabel)
	mux.HandleFunc("POST /label/{posting}/{field}", s.handleLabelSave)
	mux.HandleFunc("POST /label/{posting}/{field}/select", s.handleLabelSelect)
	mux.HandleFunc("POST /label/{posting}/{field}/edit", s.handleLabelEdit)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("web: %s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type baseVM struct {
	Title       string
	Dir         string
	Mode        string
	DatastarURL string
}

func (s *Server) baseVM(title string) baseVM {
	cfg := s.cfgSnapshot()
	return baseVM{
		Title:       title,
		Dir:         s.store.Dir,
		Mode:        cfg.Mode.String(),
		DatastarURL: datastarScriptURL,
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}
