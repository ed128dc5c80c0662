package i18n

var enTable = map[string]string{
	// Field display names
	"fields.name":                      "Name",
	"fields.nationalId":                "National ID",
	"fields.dateOfBirth":               "Date of Birth",
	"fields.gender":                    "Gender",
	"fields.address":                   "Address",
	"fields.city":                      "City",
	"fields.state":                     "State",
	"fields.country":                   "Country",
	"fields.email":                     "Email",
	"fields.phCode":                    "Country Code",
	"fields.phone":                     "Phone Number",
	"fields.maritalStatus":             "Marital Status",
	"fields.dependents":                "Dependents",
	"fields.employmentStatus":          "Employment Status",
	"fields.housingStatus":             "Housing Status",
	"fields.currency":                  "Currency",
	"fields.monthlyIncome":             "Monthly Income",
	"fields.currentFinancialSituation": "Current Financial Situation",
	"fields.employmentCircumstances":   "Employment Circumstances",
	"fields.reasonForApplying":         "Reason for Applying",

	// Validation messages
	"validation.required":      "{field} is required",
	"validation.minLength":     "{field} must be at least {min} characters",
	"validation.alphanumeric":  "{field} must contain only letters, numbers, and hyphens",
	"validation.futureDate":    "{field} cannot be in the future",
	"validation.invalidDate":   "{field} must be a valid date",
	"validation.email":         "Please enter a valid email address",
	"validation.digitsOnly":    "Phone number must contain digits only",
	"validation.phoneDigits":   "Phone number must be exactly {digits} digits",
	"validation.numeric":       "{field} must be a number",
	"validation.integer":       "{field} must be a whole number",
	"validation.negative":      "{field} cannot be negative",
	"validation.maxDependents": "Dependents cannot exceed {max}",
	"validation.positive":      "{field} cannot be negative",
	"validation.unknownCode":   "Unknown phone country code",

	// Suggestion guidance (irrelevant input short-circuit)
	"ai.guidance.title":    "Let me help you with this field.",
	"ai.guidance.intro":    "This field should describe your {context}. You could mention:",
	"ai.guidance.option1":  "your current circumstances and how long they have lasted",
	"ai.guidance.option2":  "any recent changes that affected your situation",
	"ai.guidance.option3":  "what kind of support would make a difference",
	"ai.guidance.question": "Would you like to try describing that in your own words?",

	// Suggestion prompts
	"ai.prompts.empty":          "Write a short first-person statement describing someone's {context} for a social support application.",
	"ai.prompts.helpRequest":    "The applicant asked: \"{text}\". Write a short first-person statement describing their {context} for a social support application.",
	"ai.prompts.improveContent": "Improve this description of an applicant's {context}, keeping the meaning and first person: \"{text}\"",
	"ai.prompts.rewriteContent": "Rewrite this description of an applicant's {context} with different wording, keeping the meaning and first person: \"{text}\"",
	"ai.prompts.generateFresh":  "Write a fresh short first-person statement describing an applicant's {context} for a social support application.",

	// Suggestion field contexts
	"ai.context.currentFinancialSituation": "current financial situation",
	"ai.context.employmentCircumstances":   "employment circumstances",
	"ai.context.reasonForApplying":         "reason for applying",

	// Suggestion service fallbacks
	"ai.fallback.notConfigured": "API key not configured.",
	"ai.fallback.noResponse":    "No response from AI.",
	"ai.fallback.invalidKey":    "Invalid API key. Please check your configuration.",
	"ai.fallback.rateLimit":     "Rate limit exceeded. Please try again later.",
	"ai.fallback.unavailable":   "The suggestion service is temporarily unavailable.",
	"ai.fallback.network":       "Network error. Please try again.",
	"ai.fallback.generic":       "Failed to generate suggestion.",

	// General messages
	"messages.submissionSuccess": "Data submitted successfully!",
	"messages.submissionFailed":  "Submission failed. Your answers are safe — please try again.",
	"messages.unexpectedError":   "An unexpected error occurred. Please try again.",
}

var enLists = map[string][]string{
	"ai.detection.greetings": {
		"hi", "hello", "hey", "greetings", "howdy", "yo",
	},
	"ai.detection.chatPhrases": {
		"how are you", "what's up", "whats up", "good morning",
		"good evening", "nice to meet", "who are you", "tell me a joke",
	},
}
