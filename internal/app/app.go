package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mkjeldsen/matchchain/internal/config"
	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	repocache "github.com/mkjeldsen/matchchain/internal/infrastructure/repository/cache"
	"github.com/mkjeldsen/matchchain/internal/infrastructure/repository/memory"
	"github.com/mkjeldsen/matchchain/internal/infrastructure/repository/postgres"
	"github.com/mkjeldsen/matchchain/internal/infrastructure/repository/resilient"
	"github.com/mkjeldsen/matchchain/internal/interfaces/httpapi"
	"github.com/mkjeldsen/matchchain/internal/observability"
	"github.com/mkjeldsen/matchchain/internal/platform/cache"
	"github.com/mkjeldsen/matchchain/internal/platform/logging"
	"github.com/mkjeldsen/matchchain/internal/platform/resilience"
	"github.com/mkjeldsen/matchchain/internal/usecase"
)

// App owns the wired HTTP server plus every resource that needs an
// orderly shutdown: the database pool, the pprof listener and the
// telemetry exporters.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	server      *http.Server
	pprofServer *http.Server
	db          *sqlx.DB

	stopUptrace   func(context.Context) error
	stopPyroscope func() error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	a := &App{cfg: cfg, logger: logger}

	if cfg.UptraceEnabled {
		stop, err := observability.InitUptrace(cfg, logger)
		if err != nil {
			return nil, crerr.Wrap(err, "init uptrace")
		}
		a.stopUptrace = stop
	}

	if cfg.PyroscopeEnabled {
		stop, err := observability.InitPyroscope(cfg, logger)
		if err != nil {
			a.closePartial()
			return nil, crerr.Wrap(err, "init pyroscope")
		}
		a.stopPyroscope = stop
	}

	if cfg.PprofEnabled {
		srv, err := observability.StartPprofServer(cfg, logger)
		if err != nil {
			a.closePartial()
			return nil, crerr.Wrap(err, "start pprof server")
		}
		a.pprofServer = srv
	}

	var memo *cache.Store
	if cfg.CacheEnabled {
		memo = cache.NewStore(cfg.CacheTTL)
	}

	var repo analysis.Repository
	if cfg.DBEnabled {
		db, err := openDatabase(cfg)
		if err != nil {
			a.closePartial()
			return nil, err
		}
		a.db = db
		repo = resilient.NewAnalysisRepository(
			postgres.NewAnalysisRepository(db),
			resilience.DefaultCircuitBreakerConfig(),
		)
		if memo != nil {
			repo = repocache.NewAnalysisRepository(repo, memo)
		}
	} else {
		repo = memory.NewAnalysisRepository()
	}

	analysisSvc := usecase.NewAnalysisService(repo, memo, analyzerOptions(cfg), logger)

	handler := httpapi.NewHandler(analysisSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.server
}

// Close releases resources in reverse order of acquisition. The HTTP
// server itself is shut down by the caller before Close.
func (a *App) Close(ctx context.Context) error {
	var firstErr error

	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = crerr.Wrap(err, "close database")
		}
	}

	if a.pprofServer != nil {
		if err := observability.StopPprofServer(a.pprofServer, a.logger, 5*time.Second); err != nil && firstErr == nil {
			firstErr = crerr.Wrap(err, "stop pprof server")
		}
	}

	if a.stopPyroscope != nil {
		if err := a.stopPyroscope(); err != nil && firstErr == nil {
			firstErr = crerr.Wrap(err, "stop pyroscope")
		}
	}

	if a.stopUptrace != nil {
		if err := a.stopUptrace(ctx); err != nil && firstErr == nil {
			firstErr = crerr.Wrap(err, "shutdown uptrace")
		}
	}

	return firstErr
}

func (a *App) closePartial() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.Close(ctx)
}

func analyzerOptions(cfg config.Config) usecase.AnalyzerOptions {
	return usecase.AnalyzerOptions{
		MaxChainGapS:        cfg.MaxChainGapS,
		ShotWindowS:         cfg.ShotWindowS,
		RetentionThresholdS: cfg.RetentionThresholdS,
		OutlierThresholdS:   cfg.OutlierThresholdS,
		IncludePenalties:    cfg.IncludePenalties,
		LastPassOnly:        cfg.LastPassOnly,
		SchemaVersion:       cfg.SchemaVersion,
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open database")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping database")
	}

	return db, nil
}
