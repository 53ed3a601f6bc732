package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	bankhttp "securebank/internal/bank/http"
	"securebank/internal/bank/service"
	"securebank/internal/bank/storage"
	"securebank/internal/common/clock"
	"securebank/internal/common/config"
	commoncrypto "securebank/internal/common/crypto"
	commonhttp "securebank/internal/common/http"
	"securebank/internal/common/logger"
	srv "securebank/internal/common/server"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "bank", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadBankConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fileStore := storage.NewFileStore(cfg.DataFile, cfg.SaveTimeout, log)
	store, err := fileStore.Load()
	if err != nil {
		log.Fatalf("failed to load store: %v", err)
	}
	log.Infof("loaded store from %s (%d accounts)", cfg.DataFile, len(store.Accounts))

	clk := clock.NewRealClock()
	sessions := service.NewSessionManager(commoncrypto.NewUUIDGenerator(), clk, cfg.SessionTTL)

	ledger := service.NewLedgerService(service.LedgerServiceDeps{
		Store:     store,
		Persister: fileStore,
		Hasher:    commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		Sessions:  sessions,
		Clock:     clk,
		Log:       log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go service.StartSessionCleanup(ctx, sessions, log)

	handler := bankhttp.NewHandler(ledger, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("bank service: stopping session cleanup")
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "bank", shutdownHooks)
}
