package runtime

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/config"
)

// NewHTTPServer mounts handler under the shared request middleware.
func NewHTTPServer(config config.Config, handler http.Handler, logger *zap.Logger) (*http.Server, error) {
	// --- router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  zap.NewStdLog(logger.Named("http")),
		NoColor: true,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/", handler)

	// --- http server ---
	srv := &http.Server{
		Addr:              ":" + config.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv, nil
}
