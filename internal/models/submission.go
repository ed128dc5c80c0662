// internal/models/submission.go
package models

import "time"

// Submission is the persisted record of a completed application.
type Submission struct {
	ID          string            `json:"id" db:"id"`
	ReferenceID string            `json:"referenceId" db:"reference_id"`
	SessionID   string            `json:"sessionId" db:"session_id"`
	Draft       *ApplicationDraft `json:"draft" db:"draft"`
	Locale      string            `json:"locale" db:"locale"`
	SubmittedAt time.Time         `json:"submittedAt" db:"submitted_at"`
}

// Receipt is what the applicant sees after a successful submission.
type Receipt struct {
	ReferenceID   string `json:"referenceId"`
	SubmittedDate string `json:"submittedDate"`
	Message       string `json:"message"`
}
