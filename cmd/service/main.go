package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/internal"
	"github.com/semearlages/semearapi/internal/config"
	"github.com/semearlages/semearapi/internal/logging"
	"github.com/semearlages/semearapi/pkg"
)

// set with -ldflags "-X main.version=..."
var version = ""

const minSecretKeyLength = 32

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}
	production := isProduction(*env)

	versionInfo := version
	if versionInfo == "" {
		versionInfo, err = tryGetLastCommitHash()
		if err != nil {
			log.Tracef("failed to get last commit hash / version info: %s", err)
			versionInfo = "dev"
		}
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      *env,
		Release:          versionInfo,
		SentryEnabled:    cfg.SentryEnabled && sentryDSN != "",
		SentryDSN:        sentryDSN,
		SentryServerName: "semearapi",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Tracef("running version: %s", versionInfo)

	secretKey := os.Getenv("SEMEAR_SECRET_KEY")
	switch {
	case secretKey == "" && production:
		log.Fatalln("secret key not set. use SEMEAR_SECRET_KEY")
	case secretKey == "":
		secretKey, err = pkg.GenerateRandomString(minSecretKeyLength)
		if err != nil {
			log.Fatalf("generate secret key: %s", err)
		}
		log.Warnln("secret key not set, using a random one: tokens will not survive a restart. use SEMEAR_SECRET_KEY")
	case len(secretKey) < minSecretKeyLength:
		log.Warnf("secret key shorter than %d characters", minSecretKeyLength)
	}

	adminPassword := os.Getenv("SEMEAR_ADMIN_PASSWORD")
	adminPasswordHash := os.Getenv("SEMEAR_ADMIN_PASSWORD_HASH")
	if adminPassword == "" && adminPasswordHash == "" {
		log.Warnln("admin password not set. use SEMEAR_ADMIN_PASSWORD_HASH or SEMEAR_ADMIN_PASSWORD")
	}

	postgresPassword := os.Getenv("SEMEAR_POSTGRES_PASSWORD")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use SEMEAR_POSTGRES_PASSWORD")
	}

	redisPassword := os.Getenv("SEMEAR_REDIS_PASS")
	if cfg.RedisEnabled && redisPassword == "" {
		log.Errorf("redis password not set. use SEMEAR_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Debugln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			SecretKey:               []byte(secretKey),
			AdminPassword:           adminPassword,
			AdminPasswordHash:       adminPasswordHash,
			PostgresPassword:        postgresPassword,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	if err := server.GracefulShutdown(); err != nil {
		log.Errorf("graceful shutdown: %s", err)
	}
}

func isProduction(env string) bool {
	switch strings.ToLower(env) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
