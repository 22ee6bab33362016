package models

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuditEvent is one entry in the administrative audit log.
type AuditEvent struct {
	DefaultModel
	Action  string
	ActorID uuid.UUID
	Detail  string
}

// RecordAuditEvent writes an audit event on a best-effort basis.
//
// Transient write failures are retried with backoff; a final failure
// is logged and swallowed. This must never propagate into the caller's
// control flow, in particular not into the donation path.
func RecordAuditEvent(action string, actor uuid.UUID, detail string) {
	event := AuditEvent{
		Action:  action,
		ActorID: actor,
		Detail:  detail,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	operation := func() (struct{}, error) {
		return struct{}{}, DB.Create(&event).Error
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("audit event could not be written")
	}
}

// PruneAuditEvents removes audit events older than the cutoff and
// returns how many were removed.
func PruneAuditEvents(cutoff time.Time) (int64, error) {
	result := DB.Unscoped().Where("created_at < ?", cutoff).Delete(&AuditEvent{})
	return result.RowsAffected, result.Error
}
