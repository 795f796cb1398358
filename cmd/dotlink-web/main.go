package main

import (
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/matryer/way"

	httpadapter "svw.info/dotlink/internal/adapters/http"
	"svw.info/dotlink/internal/adapters/ws"
	"svw.info/dotlink/internal/generator"
	"svw.info/dotlink/internal/guard"
	"svw.info/dotlink/internal/hint"
	"svw.info/dotlink/internal/infrastructure/storage"
	"svw.info/dotlink/internal/solver"
	"svw.info/dotlink/internal/usecase"
	"svw.info/dotlink/internal/validator"
	"svw.info/dotlink/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	_ = os.MkdirAll(*persist, 0o755)

	// Wire providers → use cases → adapters
	s := solver.NewBacktrackingSolver()
	g := generator.NewAnchorGenerator(s)
	v := validator.New()
	gd := guard.New()
	hin := hint.New(s)
	st := storage.NewFS(*persist)
	uc := usecase.NewService(s, g, v, hin, gd, st)
	api := httpadapter.New(uc)
	play := ws.NewPlayServer(uc, logger)

	tmpl := web.Templates()

	router := way.NewRouter()
	router.Handle("GET", "/static/...", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	router.HandleFunc("GET", "/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	router.Handle("GET", "/play", play.HandlePlay())
	api.Register(router)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, router),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "persist", *persist)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
