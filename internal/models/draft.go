// internal/models/draft.go
package models

// ApplicationDraft is the single mutable record spanning all three form
// steps. Dependents and MonthlyIncome are interface{} because clients may
// send them as JSON numbers or strings; the step validator performs the
// coercion and the submission pipeline normalizes them.
type ApplicationDraft struct {
	// Step 0: personal
	Name        string `json:"name"`
	NationalID  string `json:"nationalId"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	PhoneCode   string `json:"phCode"`
	Phone       string `json:"phone"`

	// Step 1: family / financial
	MaritalStatus    string      `json:"maritalStatus"`
	Dependents       interface{} `json:"dependents"`
	EmploymentStatus string      `json:"employmentStatus"`
	HousingStatus    string      `json:"housingStatus"`
	Currency         string      `json:"currency"`
	MonthlyIncome    interface{} `json:"monthlyIncome"`

	// Step 2: narrative
	CurrentFinancialSituation string `json:"currentFinancialSituation"`
	EmploymentCircumstances   string `json:"employmentCircumstances"`
	ReasonForApplying         string `json:"reasonForApplying"`
}

// DefaultDraft returns a fresh draft with the same defaults the form
// presents on first load.
func DefaultDraft() *ApplicationDraft {
	return &ApplicationDraft{
		Dependents:    0,
		MonthlyIncome: 0,
	}
}

// Field returns the named field's current value, or nil for unknown names.
func (d *ApplicationDraft) Field(name string) interface{} {
	switch name {
	case FieldName:
		return d.Name
	case FieldNationalID:
		return d.NationalID
	case FieldDateOfBirth:
		return d.DateOfBirth
	case FieldGender:
		return d.Gender
	case FieldAddress:
		return d.Address
	case FieldCity:
		return d.City
	case FieldState:
		return d.State
	case FieldCountry:
		return d.Country
	case FieldEmail:
		return d.Email
	case FieldPhoneCode:
		return d.PhoneCode
	case FieldPhone:
		return d.Phone
	case FieldMaritalStatus:
		return d.MaritalStatus
	case FieldDependents:
		return d.Dependents
	case FieldEmploymentStatus:
		return d.EmploymentStatus
	case FieldHousingStatus:
		return d.HousingStatus
	case FieldCurrency:
		return d.Currency
	case FieldMonthlyIncome:
		return d.MonthlyIncome
	case FieldCurrentFinancialSituation:
		return d.CurrentFinancialSituation
	case FieldEmploymentCircumstances:
		return d.EmploymentCircumstances
	case FieldReasonForApplying:
		return d.ReasonForApplying
	}
	return nil
}

// SetField assigns a raw value to the named field. String fields accept
// only strings; the two flexible numeric fields accept anything and defer
// coercion to validation. Returns false for unknown field names or type
// mismatches, which callers treat as a rejected edit.
func (d *ApplicationDraft) SetField(name string, value interface{}) bool {
	switch name {
	case FieldDependents:
		d.Dependents = value
		return true
	case FieldMonthlyIncome:
		d.MonthlyIncome = value
		return true
	}

	str, ok := value.(string)
	if !ok {
		return false
	}

	switch name {
	case FieldName:
		d.Name = str
	case FieldNationalID:
		d.NationalID = str
	case FieldDateOfBirth:
		d.DateOfBirth = str
	case FieldGender:
		d.Gender = str
	case FieldAddress:
		d.Address = str
	case FieldCity:
		d.City = str
	case FieldState:
		d.State = str
	case FieldCountry:
		d.Country = str
	case FieldEmail:
		d.Email = str
	case FieldPhoneCode:
		d.PhoneCode = str
	case FieldPhone:
		d.Phone = str
	case FieldMaritalStatus:
		d.MaritalStatus = str
	case FieldEmploymentStatus:
		d.EmploymentStatus = str
	case FieldHousingStatus:
		d.HousingStatus = str
	case FieldCurrency:
		d.Currency = str
	case FieldCurrentFinancialSituation:
		d.CurrentFinancialSituation = str
	case FieldEmploymentCircumstances:
		d.EmploymentCircumstances = str
	case FieldReasonForApplying:
		d.ReasonForApplying = str
	default:
		return false
	}
	return true
}
