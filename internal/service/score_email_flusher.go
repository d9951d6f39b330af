package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kuiz-app/kuiz/internal/mailer"
	"github.com/kuiz-app/kuiz/internal/repository"
	"github.com/rs/zerolog/log"
)

// ScoreEmailFlusher periodically delivers queued score emails whose delay has
// elapsed. Delivery is at-least-once: a row is only stamped sent after the
// provider accepts it, and a failed row is left queued for the next run.
type ScoreEmailFlusher interface {
	// Flush processes one batch and returns how many emails were delivered.
	Flush(ctx context.Context) (int, error)
	// Run blocks, flushing on the given interval until ctx is cancelled.
	Run(ctx context.Context, interval time.Duration)
}

type scoreEmailFlusher struct {
	repo   repository.ScoreEmailRepository
	sender mailer.Sender
	batch  int
	now    func() time.Time
}

func NewScoreEmailFlusher(repo repository.ScoreEmailRepository, sender mailer.Sender, batch int) ScoreEmailFlusher {
	if batch <= 0 {
		batch = 50
	}
	return &scoreEmailFlusher{
		repo:   repo,
		sender: sender,
		batch:  batch,
		now:    time.Now,
	}
}

func (f *scoreEmailFlusher) Flush(ctx context.Context) (int, error) {
	now := f.now()
	due, err := f.repo.FindDue(now, f.batch)
	if err != nil {
		log.Error().Err(err).Msg("Score email flush: failed to load due emails")
		return 0, fmt.Errorf("failed to load due score emails: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	sent := 0
	for _, email := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := f.sender.Send(ctx, email.Email, email.Subject, email.HTML); err != nil {
			// left queued, the next run retries it
			log.Error().Err(err).Str("scoreEmailID", email.ID).Str("to", email.Email).Msg("Score email flush: delivery failed")
			continue
		}
		if err := f.repo.MarkSent(email.ID, f.now()); err != nil {
			log.Error().Err(err).Str("scoreEmailID", email.ID).Msg("Score email flush: failed to stamp sent_at")
			continue
		}
		sent++
	}

	log.Info().Int("due", len(due)).Int("sent", sent).Msg("Score email flush completed")
	return sent, nil
}

func (f *scoreEmailFlusher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Int("batch", f.batch).Msg("Score email flusher started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Score email flusher stopped")
			return
		case <-ticker.C:
			if _, err := f.Flush(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("Score email flush run failed")
			}
		}
	}
}
