// internal/form/submission/repository.go
package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"intake-service/internal/common/logger"
	"intake-service/internal/models"
)

// Repository persists application records.
type Repository struct {
	db  *sql.DB
	log logger.Logger
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.WithFields(map[string]interface{}{"component": "submission-repository"}),
	}
}

// Insert writes the application row, then an audit entry. The audit write
// is non-critical: a failure there is logged, not returned.
func (r *Repository) Insert(ctx context.Context, sub *models.Submission) error {
	draftJSON, err := json.Marshal(sub.Draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, reference_id, session_id, draft, locale, status, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID,
		sub.ReferenceID,
		sub.SessionID,
		draftJSON,
		sub.Locale,
		"submitted",
		sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	auditDetails, err := json.Marshal(map[string]interface{}{
		"referenceId": sub.ReferenceID,
		"sessionId":   sub.SessionID,
		"locale":      sub.Locale,
	})
	if err != nil {
		auditDetails = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_submitted",
		"application",
		sub.ID,
		auditDetails,
		sub.SubmittedAt,
	)
	if err != nil {
		r.log.WithError(err).Warn("Audit log insert failed", map[string]interface{}{
			"application_id": sub.ID,
		})
	}

	r.log.Info("Application record created", map[string]interface{}{
		"application_id": sub.ID,
		"reference_id":   sub.ReferenceID,
	})
	return nil
}
