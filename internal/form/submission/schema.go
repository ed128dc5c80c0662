// internal/form/submission/schema.go
package submission

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"intake-service/internal/models"
)

// draftSchema is the final structural gate before persistence. The step
// validators own the user-facing rules; this catches a draft that was
// mutated outside them (wrong types, missing members) before it reaches
// the database.
const draftSchema = `{
  "type": "object",
  "required": [
    "name", "nationalId", "dateOfBirth", "gender", "address", "city",
    "state", "country", "email", "phCode", "phone",
    "maritalStatus", "dependents", "employmentStatus", "housingStatus",
    "currency", "monthlyIncome",
    "currentFinancialSituation", "employmentCircumstances", "reasonForApplying"
  ],
  "properties": {
    "name":        {"type": "string", "minLength": 2},
    "nationalId":  {"type": "string", "pattern": "^[A-Za-z0-9-]+$"},
    "dateOfBirth": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "gender":      {"type": "string", "minLength": 1},
    "address":     {"type": "string", "minLength": 1},
    "city":        {"type": "string", "minLength": 1},
    "state":       {"type": "string", "minLength": 1},
    "country":     {"type": "string", "minLength": 1},
    "email":       {"type": "string", "minLength": 3},
    "phCode":      {"type": "string", "minLength": 2},
    "phone":       {"type": "string", "pattern": "^[0-9]+$"},
    "maritalStatus":    {"type": "string", "minLength": 1},
    "dependents":       {"type": "integer", "minimum": 0, "maximum": 10},
    "employmentStatus": {"type": "string", "minLength": 1},
    "housingStatus":    {"type": "string", "minLength": 1},
    "currency":         {"type": "string", "minLength": 1},
    "monthlyIncome":    {"type": "number", "minimum": 0},
    "currentFinancialSituation": {"type": "string", "minLength": 10},
    "employmentCircumstances":   {"type": "string", "minLength": 10},
    "reasonForApplying":         {"type": "string", "minLength": 10}
  }
}`

var compiledSchema = gojsonschema.NewStringLoader(draftSchema)

// CheckSchema validates a normalized draft against the structural schema.
// Returns a joined description of every violation, or nil.
func CheckSchema(draft *models.ApplicationDraft) error {
	doc, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("draft failed schema gate: %s", strings.Join(details, "; "))
}
