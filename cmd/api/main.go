package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/reservehq/concierge/internal/config"
	"github.com/reservehq/concierge/internal/handler"
	reservationService "github.com/reservehq/concierge/internal/service/reservation"
	"github.com/reservehq/concierge/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var sessions store.Store
	if cfg.Store.RedisAddr != "" {
		redisStore := store.NewRedisStore(
			cfg.Store.RedisAddr,
			cfg.Store.RedisPassword,
			cfg.Store.RedisDB,
			store.WithTTL(cfg.Store.SessionTTL),
		)
		if err := redisStore.Ping(ctx); err != nil {
			log.Fatalf("failed to connect to redis at %s: %v", cfg.Store.RedisAddr, err)
		}
		sessions = redisStore
		log.Printf("session store: redis (%s)", cfg.Store.RedisAddr)
	} else {
		sessions = store.NewMemoryStore()
		log.Println("session store: in-memory")
	}

	svc := reservationService.NewService(sessions, cfg.Rules)
	router := handler.NewRouter(svc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Concierge backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
