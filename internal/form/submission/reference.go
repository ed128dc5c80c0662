// internal/form/submission/reference.go

// Package submission turns a completed draft into a persisted application
// record: full-draft gate, reference ID, Postgres insert, then best-effort
// search indexing and a confirmation email.
package submission

import (
	"fmt"
	"math/rand"
)

// NewReferenceID builds the applicant-facing reference, e.g. "APP-483920".
// Always six digits.
func NewReferenceID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, 100000+rand.Intn(900000))
}
