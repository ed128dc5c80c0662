// internal/form/navigation/controller.go

// Package navigation is the step state machine: forward movement is gated
// by the active step's validation, backward movement is free, and the
// final forward movement becomes the submission.
package navigation

import (
	"context"
	"strconv"

	"intake-service/internal/common/errors"
	"intake-service/internal/common/i18n"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/metrics"
	"intake-service/internal/form/session"
	"intake-service/internal/form/validation"
	"intake-service/internal/models"
)

// Submitter runs the submission pipeline for a completed draft.
type Submitter interface {
	Submit(ctx context.Context, sessionID string, draft *models.ApplicationDraft, tr *i18n.Translator) (*models.Receipt, *errors.StandardError)
}

// Outcome is the state presented back after a navigation call.
type Outcome struct {
	StepIndex  int                `json:"stepIndex"`
	Validation *validation.Result `json:"validation,omitempty"`
	Receipt    *models.Receipt    `json:"receipt,omitempty"`
	Session    *session.Session   `json:"-"`
}

type Controller struct {
	store     *session.Store
	submitter Submitter
	log       logger.Logger
}

func NewController(store *session.Store, submitter Submitter, log logger.Logger) *Controller {
	return &Controller{
		store:     store,
		submitter: submitter,
		log:       log.WithFields(map[string]interface{}{"component": "step-controller"}),
	}
}

// Advance validates the active step and moves forward. An invalid step
// leaves the position unchanged and returns the field errors. Advancing
// from the last step submits.
func (c *Controller) Advance(ctx context.Context, sessionID string, tr *i18n.Translator) (*Outcome, *errors.StandardError) {
	sess, err := c.store.Load(ctx, sessionID)
	if err != nil {
		return nil, asStandard(err)
	}

	result := validation.ValidateStep(sess.StepIndex, sess.Draft, tr)
	if !result.Valid {
		metrics.StepValidationFailures.WithLabelValues(strconv.Itoa(sess.StepIndex)).Inc()
		return &Outcome{StepIndex: sess.StepIndex, Validation: result, Session: sess}, nil
	}

	if sess.StepIndex >= models.StepCount-1 {
		return c.Submit(ctx, sessionID, tr)
	}

	updated, err := c.store.Update(ctx, sessionID, func(s *session.Session) error {
		if s.StepIndex < models.StepCount-1 {
			s.StepIndex++
		}
		return nil
	})
	if err != nil {
		return nil, asStandard(err)
	}

	metrics.StepAdvances.WithLabelValues(strconv.Itoa(updated.StepIndex)).Inc()
	return &Outcome{StepIndex: updated.StepIndex, Validation: result, Session: updated}, nil
}

// Retreat moves one step back without validating. At the first step it is
// a no-op.
func (c *Controller) Retreat(ctx context.Context, sessionID string, tr *i18n.Translator) (*Outcome, *errors.StandardError) {
	updated, err := c.store.Update(ctx, sessionID, func(s *session.Session) error {
		if s.StepIndex > 0 {
			s.StepIndex--
		}
		return nil
	})
	if err != nil {
		return nil, asStandard(err)
	}
	return &Outcome{StepIndex: updated.StepIndex, Session: updated}, nil
}

// Submit validates the whole draft and runs the submission pipeline. On
// success the session is cleared and the receipt returned; on failure the
// draft and step position are left exactly as they were.
func (c *Controller) Submit(ctx context.Context, sessionID string, tr *i18n.Translator) (*Outcome, *errors.StandardError) {
	sess, err := c.store.Load(ctx, sessionID)
	if err != nil {
		return nil, asStandard(err)
	}

	result := validation.ValidateAll(sess.Draft, tr)
	if !result.Valid {
		metrics.StepValidationFailures.WithLabelValues("submit").Inc()
		return &Outcome{StepIndex: sess.StepIndex, Validation: result, Session: sess}, nil
	}

	receipt, stdErr := c.submitter.Submit(ctx, sessionID, sess.Draft, tr)
	if stdErr != nil {
		c.log.WithError(stdErr).Warn("Submission failed, session preserved", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, stdErr
	}

	if err := c.store.Reset(ctx, sessionID); err != nil {
		// The application is durable; a failed cleanup only means the
		// draft lingers until its TTL.
		c.log.WithError(err).Warn("Session cleanup after submission failed", map[string]interface{}{
			"session_id": sessionID,
		})
	}

	return &Outcome{StepIndex: 0, Receipt: receipt, Session: session.NewSession()}, nil
}

// ResetAll discards the draft and returns to the first step.
func (c *Controller) ResetAll(ctx context.Context, sessionID string) (*Outcome, *errors.StandardError) {
	if err := c.store.Reset(ctx, sessionID); err != nil {
		return nil, asStandard(err)
	}
	fresh := session.NewSession()
	return &Outcome{StepIndex: 0, Session: fresh}, nil
}

func asStandard(err error) *errors.StandardError {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr
	}
	return errors.NewSessionLoadFailedError(err)
}
