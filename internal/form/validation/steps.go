// internal/form/validation/steps.go

// Package validation checks one step's slice of the application draft and
// reports one localized message per invalid field. Messages are recomputed
// on every call, so step or locale switches never surface stale errors.
package validation

import (
	"strconv"
	"strings"
	"time"

	"intake-service/internal/common/i18n"
	"intake-service/internal/models"
)

const (
	maxDependents      = 10
	minNarrativeLength = 10
)

// FieldError associates a message with the field it belongs to for inline
// display.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ErrorsForField returns the errors attached to one field.
func (r *Result) ErrorsForField(field string) []FieldError {
	var out []FieldError
	for _, e := range r.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// ValidateStep validates the subset of the draft owned by the given step.
// Unknown step indices yield an empty valid result; the navigation layer
// guards the range separately.
func ValidateStep(step int, draft *models.ApplicationDraft, tr *i18n.Translator) *Result {
	var errs []FieldError
	switch step {
	case models.StepPersonal:
		errs = validatePersonal(draft, tr)
	case models.StepFinancial:
		errs = validateFinancial(draft, tr)
	case models.StepNarrative:
		errs = validateNarrative(draft, tr)
	}
	return &Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateAll runs every step validator, for the final submission gate.
func ValidateAll(draft *models.ApplicationDraft, tr *i18n.Translator) *Result {
	var errs []FieldError
	for step := 0; step < models.StepCount; step++ {
		errs = append(errs, ValidateStep(step, draft, tr).Errors...)
	}
	return &Result{Valid: len(errs) == 0, Errors: errs}
}

func requiredString(field, value string, tr *i18n.Translator, errs *[]FieldError) bool {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, FieldError{
			Field:   field,
			Code:    "MISSING_REQUIRED",
			Message: tr.T("validation.required", map[string]string{"field": tr.Field(field)}),
		})
		return false
	}
	return true
}

func validatePersonal(d *models.ApplicationDraft, tr *i18n.Translator) []FieldError {
	errs := []FieldError{}

	if requiredString(models.FieldName, d.Name, tr, &errs) {
		if len(strings.TrimSpace(d.Name)) < 2 {
			errs = append(errs, FieldError{
				Field:   models.FieldName,
				Code:    "MIN_LENGTH",
				Message: tr.T("validation.minLength", map[string]string{"field": tr.Field(models.FieldName), "min": "2"}),
			})
		}
	}

	if requiredString(models.FieldNationalID, d.NationalID, tr, &errs) {
		if !nationalIDRegex.MatchString(d.NationalID) {
			errs = append(errs, FieldError{
				Field:   models.FieldNationalID,
				Code:    "INVALID_FORMAT",
				Message: tr.T("validation.alphanumeric", map[string]string{"field": tr.Field(models.FieldNationalID)}),
			})
		}
	}

	if requiredString(models.FieldDateOfBirth, d.DateOfBirth, tr, &errs) {
		dob, err := time.Parse("2006-01-02", strings.TrimSpace(d.DateOfBirth))
		if err != nil {
			errs = append(errs, FieldError{
				Field:   models.FieldDateOfBirth,
				Code:    "INVALID_FORMAT",
				Message: tr.T("validation.invalidDate", map[string]string{"field": tr.Field(models.FieldDateOfBirth)}),
			})
		} else if dob.After(time.Now()) {
			errs = append(errs, FieldError{
				Field:   models.FieldDateOfBirth,
				Code:    "FUTURE_DATE",
				Message: tr.T("validation.futureDate", map[string]string{"field": tr.Field(models.FieldDateOfBirth)}),
			})
		}
	}

	requiredString(models.FieldGender, d.Gender, tr, &errs)
	requiredString(models.FieldAddress, d.Address, tr, &errs)
	requiredString(models.FieldCity, d.City, tr, &errs)
	requiredString(models.FieldState, d.State, tr, &errs)
	requiredString(models.FieldCountry, d.Country, tr, &errs)

	if requiredString(models.FieldEmail, d.Email, tr, &errs) {
		if !emailRegex.MatchString(strings.TrimSpace(d.Email)) {
			errs = append(errs, FieldError{
				Field:   models.FieldEmail,
				Code:    "INVALID_FORMAT",
				Message: tr.T("validation.email", nil),
			})
		}
	}

	codeKnown := false
	var code CountryCode
	if requiredString(models.FieldPhoneCode, d.PhoneCode, tr, &errs) {
		code, codeKnown = LookupCountryCode(strings.TrimSpace(d.PhoneCode))
		if !codeKnown {
			errs = append(errs, FieldError{
				Field:   models.FieldPhoneCode,
				Code:    "INVALID_VALUE",
				Message: tr.T("validation.unknownCode", nil),
			})
		}
	}

	if requiredString(models.FieldPhone, d.Phone, tr, &errs) {
		phone := strings.TrimSpace(d.Phone)
		if !digitsRegex.MatchString(phone) {
			errs = append(errs, FieldError{
				Field:   models.FieldPhone,
				Code:    "INVALID_FORMAT",
				Message: tr.T("validation.digitsOnly", nil),
			})
		} else if codeKnown && len(phone) != code.Digits {
			errs = append(errs, FieldError{
				Field:   models.FieldPhone,
				Code:    "INVALID_LENGTH",
				Message: tr.T("validation.phoneDigits", map[string]string{"digits": strconv.Itoa(code.Digits)}),
			})
		}
	}

	return errs
}

func validateFinancial(d *models.ApplicationDraft, tr *i18n.Translator) []FieldError {
	errs := []FieldError{}

	requiredString(models.FieldMaritalStatus, d.MaritalStatus, tr, &errs)

	dependents, present, err := coerceNumber(d.Dependents)
	switch {
	case !present:
		errs = append(errs, FieldError{
			Field:   models.FieldDependents,
			Code:    "MISSING_REQUIRED",
			Message: tr.T("validation.required", map[string]string{"field": tr.Field(models.FieldDependents)}),
		})
	case err != nil:
		errs = append(errs, FieldError{
			Field:   models.FieldDependents,
			Code:    "INVALID_TYPE",
			Message: tr.T("validation.numeric", map[string]string{"field": tr.Field(models.FieldDependents)}),
		})
	case !isIntegral(dependents):
		errs = append(errs, FieldError{
			Field:   models.FieldDependents,
			Code:    "INVALID_VALUE",
			Message: tr.T("validation.integer", map[string]string{"field": tr.Field(models.FieldDependents)}),
		})
	case dependents < 0:
		errs = append(errs, FieldError{
			Field:   models.FieldDependents,
			Code:    "INVALID_VALUE",
			Message: tr.T("validation.negative", map[string]string{"field": tr.Field(models.FieldDependents)}),
		})
	case dependents > maxDependents:
		errs = append(errs, FieldError{
			Field:   models.FieldDependents,
			Code:    "INVALID_VALUE",
			Message: tr.T("validation.maxDependents", map[string]string{"max": strconv.Itoa(maxDependents)}),
		})
	}

	requiredString(models.FieldEmploymentStatus, d.EmploymentStatus, tr, &errs)
	requiredString(models.FieldHousingStatus, d.HousingStatus, tr, &errs)
	requiredString(models.FieldCurrency, d.Currency, tr, &errs)

	income, present, err := coerceNumber(d.MonthlyIncome)
	switch {
	case !present:
		errs = append(errs, FieldError{
			Field:   models.FieldMonthlyIncome,
			Code:    "MISSING_REQUIRED",
			Message: tr.T("validation.required", map[string]string{"field": tr.Field(models.FieldMonthlyIncome)}),
		})
	case err != nil:
		errs = append(errs, FieldError{
			Field:   models.FieldMonthlyIncome,
			Code:    "INVALID_TYPE",
			Message: tr.T("validation.numeric", map[string]string{"field": tr.Field(models.FieldMonthlyIncome)}),
		})
	case income < 0:
		errs = append(errs, FieldError{
			Field:   models.FieldMonthlyIncome,
			Code:    "INVALID_VALUE",
			Message: tr.T("validation.positive", map[string]string{"field": tr.Field(models.FieldMonthlyIncome)}),
		})
	}

	return errs
}

func validateNarrative(d *models.ApplicationDraft, tr *i18n.Translator) []FieldError {
	errs := []FieldError{}

	narratives := []struct {
		field string
		value string
	}{
		{models.FieldCurrentFinancialSituation, d.CurrentFinancialSituation},
		{models.FieldEmploymentCircumstances, d.EmploymentCircumstances},
		{models.FieldReasonForApplying, d.ReasonForApplying},
	}

	for _, n := range narratives {
		if !requiredString(n.field, n.value, tr, &errs) {
			continue
		}
		if len(strings.TrimSpace(n.value)) < minNarrativeLength {
			errs = append(errs, FieldError{
				Field:   n.field,
				Code:    "MIN_LENGTH",
				Message: tr.T("validation.minLength", map[string]string{"field": tr.Field(n.field), "min": strconv.Itoa(minNarrativeLength)}),
			})
		}
	}

	return errs
}

// Normalize rewrites the two flexible numeric fields to their coerced
// numeric forms. Call only after validation has passed.
func Normalize(d *models.ApplicationDraft) {
	if v, present, err := coerceNumber(d.Dependents); present && err == nil {
		d.Dependents = int(v)
	}
	if v, present, err := coerceNumber(d.MonthlyIncome); present && err == nil {
		d.MonthlyIncome = v
	}
}
