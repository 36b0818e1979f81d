package worker

// expiracao_cron.go
// Background goroutine that cancels stale reservations. A reservation is a
// movement stuck in processing longer than the configured TTL — the user
// started a redemption and never confirmed, so the held stock goes back to
// the available pool via the normal cancel transition.

import (
	"context"
	"time"

	"simplifique/internal/repository"
	"simplifique/internal/service"

	"github.com/rs/zerolog/log"
)

const (
	expiracaoTickInterval = time.Minute
	expiracaoBatchSize    = 50
)

// ExpiracaoCronConfig holds all dependencies for the expiry goroutine.
type ExpiracaoCronConfig struct {
	MovRepo  repository.MovimentacaoRepository
	Resgates service.ResgateService
	TTL      time.Duration
}

// StartExpiracaoCron launches a background goroutine that ticks every minute,
// finds processing movements older than the TTL and cancels them through the
// redemption service — so expiry follows the exact same transition rules as a
// user-initiated cancel.
func StartExpiracaoCron(ctx context.Context, cfg ExpiracaoCronConfig) {
	go func() {
		ticker := time.NewTicker(expiracaoTickInterval)
		defer ticker.Stop()

		log.Info().Dur("ttl", cfg.TTL).Msg("expiracao_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("expiracao_cron: shutting down")
				return
			case <-ticker.C:
				processExpirations(ctx, cfg)
			}
		}
	}()
}

func processExpirations(ctx context.Context, cfg ExpiracaoCronConfig) {
	cutoff := time.Now().Add(-cfg.TTL)
	movs, err := cfg.MovRepo.ListarProcessandoAntesDe(ctx, cutoff, expiracaoBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("expiracao_cron: failed to query stale reservations")
		return
	}
	if len(movs) == 0 {
		return
	}

	log.Info().Int("count", len(movs)).Msg("expiracao_cron: canceling stale reservations")

	for i := range movs {
		mov := &movs[i]
		if _, err := cfg.Resgates.CancelarResgate(ctx, mov.MovID); err != nil {
			// A concurrent confirm may have won the race — that's fine, the
			// movement is terminal either way.
			log.Warn().Err(err).Uint64("mov_id", mov.MovID).Msg("expiracao_cron: cancel failed")
			continue
		}
		log.Info().Uint64("mov_id", mov.MovID).Time("created_at", mov.CreatedAt).
			Msg("expiracao_cron: reservation expired")
	}
}
