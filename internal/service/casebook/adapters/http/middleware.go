package http

import (
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/http/openapi"
	"github.com/scarevision/casebook/internal/service/common"
)

// CORSPolicy lists the browser origins allowed to read responses.
type CORSPolicy struct {
	AllowedOrigins  []string
	AllowedSuffixes []string
	// Strict rejects other origins with 403 instead of answering without an
	// allow header.
	Strict bool
}

func (p CORSPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	if slices.Contains(p.AllowedOrigins, origin) {
		return true
	}
	for _, suffix := range p.AllowedSuffixes {
		if suffix != "" && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// CacheControl sets a default Cache-Control directive before anything else
// answers, so preflights, rejections and routing errors carry one too.
// Handlers replace it per endpoint.
func CacheControl(directive string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", directive)
			next.ServeHTTP(w, r)
		})
	}
}

// CORS sets the cross-origin headers on every response and answers
// preflight requests with 204. Requests without an Origin header are not
// cross-origin and are never rejected.
func CORS(policy CORSPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := policy.Allows(origin)

			h := w.Header()
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")

			if policy.Strict && origin != "" && !allowed {
				err := common.NewError(common.CodeOriginRejected, "Origin not allowed")
				writeJSON(w, common.HTTPStatus(err), openapi.Error{Error: err.Message})
				return
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recoverer turns a panic into a 500 JSON body instead of the default error
// page.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic serving request",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()))
				writeJSON(w, http.StatusInternalServerError, openapi.Error{Error: "Proxy error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, openapi.Error{Error: "Method not allowed"})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, openapi.Error{Error: "Not found"})
}
