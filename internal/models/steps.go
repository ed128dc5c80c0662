// internal/models/steps.go
package models

// Draft field names as they appear on the wire.
const (
	FieldName        = "name"
	FieldNationalID  = "nationalId"
	FieldDateOfBirth = "dateOfBirth"
	FieldGender      = "gender"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldState       = "state"
	FieldCountry     = "country"
	FieldEmail       = "email"
	FieldPhoneCode   = "phCode"
	FieldPhone       = "phone"

	FieldMaritalStatus    = "maritalStatus"
	FieldDependents       = "dependents"
	FieldEmploymentStatus = "employmentStatus"
	FieldHousingStatus    = "housingStatus"
	FieldCurrency         = "currency"
	FieldMonthlyIncome    = "monthlyIncome"

	FieldCurrentFinancialSituation = "currentFinancialSituation"
	FieldEmploymentCircumstances   = "employmentCircumstances"
	FieldReasonForApplying         = "reasonForApplying"
)

// Step indices. Forward progress is gated by validation; backward is free.
const (
	StepPersonal  = 0
	StepFinancial = 1
	StepNarrative = 2

	StepCount = 3
)

// StepDefinition ties a step index to the disjoint field subset it owns.
type StepDefinition struct {
	Index  int      `json:"index"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Steps is the ordered step list. Each draft field belongs to exactly one
// step.
var Steps = [StepCount]StepDefinition{
	{
		Index: StepPersonal,
		Title: "Personal Information",
		Fields: []string{
			FieldName, FieldNationalID, FieldDateOfBirth, FieldGender,
			FieldAddress, FieldCity, FieldState, FieldCountry,
			FieldEmail, FieldPhoneCode, FieldPhone,
		},
	},
	{
		Index: StepFinancial,
		Title: "Family & Financial Info",
		Fields: []string{
			FieldMaritalStatus, FieldDependents, FieldEmploymentStatus,
			FieldHousingStatus, FieldCurrency, FieldMonthlyIncome,
		},
	},
	{
		Index: StepNarrative,
		Title: "Situation Descriptions",
		Fields: []string{
			FieldCurrentFinancialSituation, FieldEmploymentCircumstances,
			FieldReasonForApplying,
		},
	},
}

// NarrativeFields are the fields eligible for AI suggestions.
var NarrativeFields = map[string]bool{
	FieldCurrentFinancialSituation: true,
	FieldEmploymentCircumstances:   true,
	FieldReasonForApplying:         true,
}

// KnownField reports whether name is a draft field.
func KnownField(name string) bool {
	for _, step := range Steps {
		for _, f := range step.Fields {
			if f == name {
				return true
			}
		}
	}
	return false
}

// ValidStep reports whether idx addresses a defined step.
func ValidStep(idx int) bool {
	return idx >= 0 && idx < StepCount
}
