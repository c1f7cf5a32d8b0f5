package http

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5"
	oapimw "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/http/openapi"
)

func Router(srv *Server, swagger *openapi3.T, cors CORSPolicy, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(CacheControl(srv.opts.CaseCache.Header()))
	r.Use(CORS(cors))
	r.Use(Recoverer(logger))
	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(notFound)

	r.Group(func(r chi.Router) {
		// Add request validation middleware
		r.Use(oapimw.OapiRequestValidatorWithOptions(swagger, &oapimw.Options{
			Options: openapi3filter.Options{
				AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
					return nil
				},
			},
			ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
				writeJSON(w, statusCode, openapi.Error{Error: message})
			},
			SilenceServersWarning: true,
		}))

		openapi.HandlerWithOptions(srv, openapi.ChiServerOptions{
			BaseRouter: r,
			ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				writeJSON(w, http.StatusBadRequest, openapi.Error{Error: err.Error()})
			},
		})
	})

	return r
}
