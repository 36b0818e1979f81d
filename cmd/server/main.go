package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simplifique/internal/config"
	"simplifique/internal/infra"
	"simplifique/internal/repository"
	"simplifique/internal/router"
	"simplifique/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async tasks (voucher PDF, email delivery). Handlers are
	// wired here (composition root) so the pool has full access to all
	// infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	movRepo := repository.NewMovimentacaoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Voucher: worker.NewVoucherWorker(movRepo, usuarioRepo, dispatcher, rdb, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer, smtpCB, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r, resgateSvc := router.New(cfg, db, rdb, dispatcher)

	// Stale reservations are canceled through the same service instance the
	// API uses, so expiry obeys the same transition rules.
	worker.StartExpiracaoCron(ctx, worker.ExpiracaoCronConfig{
		MovRepo:  movRepo,
		Resgates: resgateSvc,
		TTL:      time.Duration(cfg.ReservaTTLHoras) * time.Hour,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Simplifique backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
