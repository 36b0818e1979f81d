package worker

// voucher_worker.go
// Processes voucher jobs from QueueVoucher: generates the pickup voucher PDF
// for a confirmed redemption and enqueues the delivery email.
// PDF generation is retried with exponential backoff (max 3 attempts); jobs
// that exhaust retries land in the dead letter queue.

import (
	"context"
	"encoding/json"
	"fmt"

	"simplifique/internal/infra"
	"simplifique/internal/model"
	"simplifique/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// VoucherJobPayload is the job envelope sent to QueueVoucher.
type VoucherJobPayload struct {
	MovID uint64 `json:"mov_id"`
}

// VoucherWorker turns confirmed movements into pickup vouchers.
type VoucherWorker struct {
	movRepo        repository.MovimentacaoRepository
	usuarioRepo    repository.UsuarioRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
}

// NewVoucherWorker wires all dependencies for the voucher worker.
func NewVoucherWorker(
	movRepo repository.MovimentacaoRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
) *VoucherWorker {
	return &VoucherWorker{
		movRepo:        movRepo,
		usuarioRepo:    usuarioRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single voucher job:
//  1. Parse VoucherJobPayload from the job envelope
//  2. Fetch the movement (with its variant) from DB
//  3. Skip unless the movement is confirmed — a cancel may have raced the queue
//  4. Generate the voucher PDF with backoff (max 3 attempts)
//  5. Enqueue the delivery email when the user has one
func (w *VoucherWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload VoucherJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("voucher_worker: invalid payload")
		return
	}

	mov, err := w.movRepo.FindByID(ctx, payload.MovID)
	if err != nil {
		log.Error().Err(err).Uint64("mov_id", payload.MovID).Msg("voucher_worker: movement not found")
		return
	}
	if mov.Status != model.MovStatusConfirmed {
		log.Warn().Uint64("mov_id", mov.MovID).Str("status", mov.Status).
			Msg("voucher_worker: movement not confirmed — skipping")
		return
	}

	usuario, err := w.usuarioRepo.FindByID(ctx, mov.UsuarioID)
	if err != nil {
		log.Error().Err(err).Uint64("mov_id", mov.MovID).Msg("voucher_worker: user not found")
		return
	}

	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateVoucherPDF(mov, usuario.Nome, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Uint64("mov_id", mov.MovID).
				Msg("voucher_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if pdfErr != nil {
		log.Error().Err(pdfErr).Uint64("mov_id", mov.MovID).
			Msg("voucher_worker: PDF generation failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueVoucher, "voucher", raw,
			fmt.Sprintf("PDF generation failed: %v", pdfErr), 3)
		return
	}
	log.Info().Str("pdf", pdfPath).Uint64("mov_id", mov.MovID).Msg("voucher_worker: voucher generated")

	if usuario.Email == nil || *usuario.Email == "" {
		log.Info().Uint64("mov_id", mov.MovID).Msg("voucher_worker: user has no email — voucher kept on disk")
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: *usuario.Email,
		Subject: fmt.Sprintf("Voucher de Resgate — N° %d", mov.MovID),
		Body:    fmt.Sprintf("Seu resgate foi confirmado!\nApresente o voucher em anexo na retirada.\nPontos utilizados: %d", mov.PontosTotal),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *usuario.Email).Msg("voucher_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", *usuario.Email).Uint64("mov_id", mov.MovID).Msg("voucher_worker: email job enqueued")
}
