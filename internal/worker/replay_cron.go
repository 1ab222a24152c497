package worker

// replay_cron.go
// Background goroutine that periodically drains the email dead letter queue
// back onto the live queue once the SMTP circuit breaker has recovered.
// Receipt DLQ entries are not replayed automatically: a receipt that failed
// three times usually points at bad data, not a flaky dependency.

import (
	"context"
	"encoding/json"
	"time"

	"restomate/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	replayTickInterval = 30 * time.Second
	replayBatchSize    = 10
)

// StartReplayCron launches a goroutine that ticks every 30s and, while the
// SMTP breaker is closed, moves up to replayBatchSize dead email jobs back
// to QueueEmail. It respects the context for graceful shutdown.
func StartReplayCron(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	go func() {
		ticker := time.NewTicker(replayTickInterval)
		defer ticker.Stop()

		log.Info().Msg("replay_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("replay_cron: shutting down")
				return
			case <-ticker.C:
				replayDeadEmails(ctx, rdb, cb)
			}
		}
	}()
}

func replayDeadEmails(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	// Replaying into an open breaker would bounce every job straight back
	if cb.State() != infra.CBClosed {
		log.Debug().Str("state", cb.State().String()).Msg("replay_cron: breaker not closed, skipping tick")
		return
	}

	dlqKey := DLQPrefix + QueueEmail
	for i := 0; i < replayBatchSize; i++ {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err == redis.Nil {
			return // DLQ drained
		}
		if err != nil {
			log.Error().Err(err).Msg("replay_cron: failed to pop DLQ entry")
			return
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("replay_cron: corrupt DLQ entry dropped")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("replay_cron: failed to re-encode job")
			continue
		}
		if err := rdb.LPush(ctx, QueueEmail, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("replay_cron: failed to requeue job")
			return
		}

		log.Info().
			Str("job_type", entry.JobType).
			Str("original_failure", entry.Reason).
			Msg("replay_cron: dead email job requeued")
	}
}
