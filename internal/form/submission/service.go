// internal/form/submission/service.go
package submission

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"intake-service/internal/common/config"
	"intake-service/internal/common/errors"
	"intake-service/internal/common/i18n"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/metrics"
	"intake-service/internal/form/validation"
	"intake-service/internal/models"
)

// Service runs the submission pipeline. The indexer and notifier are
// optional; a nil value disables that side effect.
type Service struct {
	cfg      config.SubmissionConfig
	repo     *Repository
	indexer  *Indexer
	notifier *Notifier
	log      logger.Logger

	// roll is the failure-injection source, replaceable in tests.
	roll func() float64
}

func NewService(cfg config.SubmissionConfig, repo *Repository, indexer *Indexer, notifier *Notifier, log logger.Logger) *Service {
	return &Service{
		cfg:      cfg,
		repo:     repo,
		indexer:  indexer,
		notifier: notifier,
		log:      log.WithFields(map[string]interface{}{"component": "submission-service"}),
		roll:     rand.Float64,
	}
}

// Submit validates the complete draft and persists it. On any error the
// caller's draft and step position are left untouched; only a successful
// return means the application exists.
func (s *Service) Submit(ctx context.Context, sessionID string, draft *models.ApplicationDraft, tr *i18n.Translator) (*models.Receipt, *errors.StandardError) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Millisecond)
		defer cancel()
	}

	result := validation.ValidateAll(draft, tr)
	if !result.Valid {
		metrics.Submissions.WithLabelValues("rejected").Inc()
		return nil, errors.NewSubmissionRejectedError(
			fmt.Sprintf("%d field(s) failed validation", len(result.Errors)))
	}

	normalized := *draft
	validation.Normalize(&normalized)
	if err := CheckSchema(&normalized); err != nil {
		metrics.Submissions.WithLabelValues("rejected").Inc()
		return nil, errors.NewSubmissionRejectedError(err.Error())
	}

	// Development-only failure injection, mirroring the mock backend the
	// client was built against. Zero in production.
	if s.cfg.FailureRate > 0 && s.roll() < s.cfg.FailureRate {
		metrics.Submissions.WithLabelValues("injected_failure").Inc()
		return nil, errors.NewSubmissionFailedError(fmt.Errorf("injected failure"))
	}

	sub := &models.Submission{
		ID:          uuid.New().String(),
		ReferenceID: NewReferenceID(s.cfg.ReferencePrefix),
		SessionID:   sessionID,
		Draft:       &normalized,
		Locale:      tr.Tag().String(),
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, sub); err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		s.log.WithError(err).Error("Submission insert failed", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	if s.indexer != nil {
		s.indexer.Index(ctx, sub)
	}
	if s.notifier != nil {
		s.notifier.SendConfirmation(ctx, sub)
	}

	metrics.Submissions.WithLabelValues("success").Inc()
	s.log.Info("Application submitted", map[string]interface{}{
		"session_id":   sessionID,
		"reference_id": sub.ReferenceID,
	})

	return &models.Receipt{
		ReferenceID:   sub.ReferenceID,
		SubmittedDate: sub.SubmittedAt.Format("Jan 2, 2006"),
		Message:       tr.T("messages.submissionSuccess", nil),
	}, nil
}
