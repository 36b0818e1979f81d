package worker

// email_worker.go
// Processes email jobs from QueueEmail: delivers voucher PDFs via SMTP.
// Sends go through the circuit breaker so a downed relay fails fast instead
// of stalling the pool; failed sends land in the dead letter queue.

import (
	"context"
	"encoding/json"
	"time"

	"simplifique/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

// send pushes the message through the circuit breaker, up to 3 attempts
// with exponential backoff.
func (w *EmailWorker) send(ctx context.Context, payload EmailJobPayload) error {
	return withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.SendVoucher(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		})
	})
}

// Process sends an email with the voucher PDF as attachment.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.send(ctx, payload); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), 3)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: voucher sent successfully")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
