package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/semearlages/semearapi/internal/auth"
	"github.com/semearlages/semearapi/internal/cache"
	"github.com/semearlages/semearapi/internal/config"
	"github.com/semearlages/semearapi/internal/db"
	"github.com/semearlages/semearapi/internal/middleware"
	"github.com/semearlages/semearapi/internal/misc"
	"github.com/semearlages/semearapi/internal/news"
	"github.com/semearlages/semearapi/internal/ratelimit"
	"github.com/semearlages/semearapi/internal/telemetry/metrics"
	"github.com/semearlages/semearapi/internal/telemetry/tracing"
	"github.com/semearlages/semearapi/pkg"
)

const serviceName = "semearapi"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	authService    *auth.Service
	newsRepo       news.Repository
	rateLimiter    *ratelimit.Limiter
	rateLimitRules ratelimit.Rules
	trustedProxies *pkg.TrustedProxies
	stopSweeper    context.CancelFunc

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
	// SecretKey signs the access tokens
	SecretKey               []byte
	AdminPassword           string
	AdminPasswordHash       string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, params.VersionInfo)
	if err != nil {
		return nil, err
	}

	dbParams := db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDB,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbParams.ConnString()); err != nil {
			otelShutdown()
			return nil, fmt.Errorf("migrate db: %w", err)
		}
		log.Debugln("db migrations applied")
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDB},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var (
		rdb       *redis.Client
		newsCache cache.Cache
	)
	if cfg.RedisEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			// the news cache falls back to postgres on every redis error
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		newsCache = cache.NewRedisCache(rdb, serviceName+":")
	} else {
		log.Debugf("redis disabled, using local cache of %d MB", cfg.LocalCacheSizeMB)
		newsCache = cache.NewLocalCache(cfg.LocalCacheSizeMB)
	}

	tokens := auth.NewTokenService(params.SecretKey, cfg.TokenTTL())
	authStore := auth.NewRepo(dbPool)

	s, err := newServer(serverDeps{
		config:         cfg,
		versionInfo:    params.VersionInfo,
		authService:    auth.NewService(authStore, tokens, cfg.BcryptCost),
		newsRepo:       news.NewCachedRepo(news.NewRepo(dbPool), newsCache, cfg.CacheTTL()),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	})
	if err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, err
	}

	s.dbPool = dbPool
	s.redisClient = rdb
	s.otelShutdown = otelShutdown

	s.bootstrap(ctx, authStore, params)

	return s, nil
}

type serverDeps struct {
	config         *config.Config
	versionInfo    string
	authService    *auth.Service
	newsRepo       news.Repository
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

// newServer assembles the storage independent parts of the server.
func newServer(deps serverDeps) (*Server, error) {
	cfg := deps.config

	rules := ratelimit.DefaultRules()
	for name, rl := range cfg.RateLimits {
		window := time.Duration(rl.WindowSeconds) * time.Second
		if err := rules.Override(name, rl.MaxRequests, window); err != nil {
			return nil, fmt.Errorf("rate limits config: %w", err)
		}
		log.Debugf("rate limit override: %s", rules.Get(name))
	}

	trustedProxies, err := pkg.NewTrustedProxies(cfg.TrustedProxies, cfg.ClientIPHeader)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies config: %w", err)
	}

	return &Server{
		config:         cfg,
		versionInfo:    deps.versionInfo,
		authService:    deps.authService,
		newsRepo:       deps.newsRepo,
		rateLimiter:    ratelimit.NewLimiter(),
		rateLimitRules: rules,
		trustedProxies: trustedProxies,
		metricsManager: deps.metricsManager,
		promRegistry:   deps.promRegistry,
		otelShutdown:   func() {},
	}, nil
}

// bootstrap creates the configured admin and the initial news. Both are
// best effort: failures are logged and the server starts anyway.
func (s *Server) bootstrap(ctx context.Context, authStore auth.Store, params NewServerParams) {
	if s.config.AdminEmail == "" {
		log.Warnln("admin email not set, skipping admin bootstrap")
	} else if params.AdminPassword == "" && params.AdminPasswordHash == "" {
		log.Warnln("admin password not set, skipping admin bootstrap")
	} else {
		_, created, err := auth.EnsureAdmin(ctx, authStore, auth.EnsureAdminParams{
			Email:        s.config.AdminEmail,
			PasswordHash: params.AdminPasswordHash,
			Password:     params.AdminPassword,
			HashCost:     s.config.BcryptCost,
		})
		if err != nil {
			log.Errorf("bootstrap admin: %s", err)
		} else if created {
			log.Infof("default admin [%s] created", s.config.AdminEmail)
		}
	}

	if s.config.SeedNews {
		if _, err := news.SeedIfEmpty(ctx, s.newsRepo); err != nil {
			log.Errorf("seed news: %s", err)
		}
	}
}

func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	guard := middleware.NewRouteGuard(middleware.NewRouteGuardParams{
		RateLimiter:    s.rateLimiter,
		Rules:          s.rateLimitRules,
		TrustedProxies: s.trustedProxies,
		AuthMiddleware: middleware.NewAuthMiddlewareHandler(s.authService),
		MetricsManager: s.metricsManager,
	})

	miscHandler := misc.NewHandler(misc.NewHandlerParams{
		AuthService:    s.authService,
		VersionInfo:    s.versionInfo,
		CookieSecure:   s.config.CookieSecure,
		MetricsManager: s.metricsManager,
	})
	miscHandler.SetupRoutes(r, guard)

	newsHandler := news.NewHandler(s.newsRepo, s.metricsManager)
	newsHandler.SetupRoutes(r, guard)

	// all the rest - unhandled paths and methods
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.LimitAndDrainRequest(s.config.MaxBodyBytes))

	return middleware.Cors(s.config.AllowedOrigins)(r)
}

func (s *Server) Serve(ctx context.Context) {
	ipAndPort := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	s.stopSweeper = stopSweeper
	go s.rateLimiter.Run(sweeperCtx, s.config.RateLimitSweepInterval())

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.stopSweeper != nil {
		s.stopSweeper()
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); !ok {
		log.Debugln("sentry flush timed out")
	}

	return err
}
