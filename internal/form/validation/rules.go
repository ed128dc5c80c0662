// internal/form/validation/rules.go
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Predefined patterns
var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nationalIDRegex = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)
	digitsRegex     = regexp.MustCompile(`^[0-9]+$`)
)

// CountryCode ties a dialing code to the exact number of subscriber digits
// it requires.
type CountryCode struct {
	Code   string
	Label  string
	Digits int
}

// CountryCodes is the fixed dialing-code table. A phone value is valid iff
// its digit count equals the selected code's requirement.
var CountryCodes = []CountryCode{
	{Code: "+91", Label: "India", Digits: 10},
	{Code: "+971", Label: "UAE", Digits: 9},
	{Code: "+1", Label: "USA", Digits: 10},
	{Code: "+44", Label: "UK", Digits: 10},
}

// LookupCountryCode resolves a dialing code from the fixed table.
func LookupCountryCode(code string) (CountryCode, bool) {
	for _, c := range CountryCodes {
		if c.Code == code {
			return c, true
		}
	}
	return CountryCode{}, false
}

// coerceNumber accepts the value shapes JSON decoding and form bindings
// produce for numeric fields. Empty strings are reported as absent rather
// than zero so required checks fire first.
func coerceNumber(raw interface{}) (float64, bool, error) {
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case json.Number:
		f, err := v.Float64()
		return f, true, err
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, true, err
	default:
		return 0, true, fmt.Errorf("not a number: %T", raw)
	}
}

// isIntegral reports whether f carries no fractional part.
func isIntegral(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
}
