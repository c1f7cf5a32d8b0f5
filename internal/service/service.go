package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/airtable"
	casebookHTTP "github.com/scarevision/casebook/internal/service/casebook/adapters/http"
	"github.com/scarevision/casebook/internal/service/casebook/adapters/http/openapi"
	"github.com/scarevision/casebook/internal/service/casebook/adapters/render"
	"github.com/scarevision/casebook/internal/service/casebook/app"
	"github.com/scarevision/casebook/internal/service/casebook/app/commands"
	"github.com/scarevision/casebook/internal/service/casebook/app/queries"
	"github.com/scarevision/casebook/internal/service/casebook/domain/schema"
	"github.com/scarevision/casebook/internal/service/config"
	"github.com/scarevision/casebook/internal/service/runtime"
)

type Service struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func NewCasebookService() (*Service, error) {
	appConfig, err := config.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	logger, err := runtime.NewLogger(appConfig.LogLevel)
	if err != nil {
		return nil, err
	}

	// field names fail fast here rather than rendering empty sections
	fields, err := schema.Load(appConfig.FieldSchemaPath)
	if err != nil {
		return nil, err
	}

	swagger, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	// init adapters
	records := airtable.NewClient(
		appConfig.Airtable.APIURL,
		&http.Client{Timeout: appConfig.Airtable.Timeout},
		logger.Named("airtable"),
	)
	renderer := render.NewRenderer(fields, logger.Named("render"))

	// init queries
	getCaseHandler := queries.NewGetCaseRecordsQueryHandler(records, caseSource(appConfig), logger.Named("case"))
	listCasesHandler := queries.NewListCasesQueryHandler(records, queries.CaseListSource{
		Credentials: airtable.Credentials{
			APIKey: appConfig.Airtable.CaseListAPIKey,
			BaseID: appConfig.Airtable.CaseListBaseID,
		},
		Table: appConfig.Airtable.CaseListTableID,
	})
	renderPageHandler := queries.NewRenderCasePageQueryHandler(getCaseHandler, renderer)
	queryBus := app.NewQueryBus(getCaseHandler, listCasesHandler, renderPageHandler)

	// init commands
	cmdBus := app.NewCommandBus(commands.NewScoreMarkingHandler())

	// init http handler
	casebookServer := casebookHTTP.NewServer(cmdBus, queryBus, swagger, casebookHTTP.Options{
		CaseCache: casebookHTTP.CachePolicy{
			MaxAge:               appConfig.Cache.CaseMaxAge,
			StaleWhileRevalidate: appConfig.Cache.CaseSWR,
		},
		ListCache: casebookHTTP.CachePolicy{
			MaxAge:               appConfig.Cache.ListMaxAge,
			StaleWhileRevalidate: appConfig.Cache.ListSWR,
		},
		ForwardUpstreamDetail: appConfig.Case.ForwardUpstreamDetail,
	}, logger)
	handler := casebookHTTP.Router(casebookServer, swagger, casebookHTTP.CORSPolicy{
		AllowedOrigins:  appConfig.CORS.AllowedOrigins,
		AllowedSuffixes: appConfig.CORS.AllowedSuffixes,
		Strict:          appConfig.CORS.Strict,
	}, logger)

	httpServer, err := runtime.NewHTTPServer(appConfig, handler, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

func caseSource(cfg config.Config) queries.CaseSource {
	return queries.CaseSource{
		Credentials: airtable.Credentials{
			APIKey: cfg.Airtable.APIKey,
			BaseID: cfg.Airtable.BaseID,
		},
		FieldAllowlist: cfg.Case.FieldAllowlist,
		Profile: queries.ProfileLookup{
			Enabled:    cfg.Case.ProfileEnrichment,
			Table:      cfg.Case.ProfileTable,
			CaseField:  cfg.Case.ProfileCaseField,
			ImageField: cfg.Case.ProfileImageField,
		},
	}
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// the server down gracefully.
func (s *Service) Start(ctx context.Context) error {
	defer func() { _ = s.logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(timeoutCtx); err != nil {
		return err
	}

	s.logger.Info("server stopped")

	return nil
}
