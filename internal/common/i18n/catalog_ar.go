package i18n

var arTable = map[string]string{
	// Field display names
	"fields.name":                      "الاسم",
	"fields.nationalId":                "رقم الهوية",
	"fields.dateOfBirth":               "تاريخ الميلاد",
	"fields.gender":                    "الجنس",
	"fields.address":                   "العنوان",
	"fields.city":                      "المدينة",
	"fields.state":                     "الإمارة/الولاية",
	"fields.country":                   "الدولة",
	"fields.email":                     "البريد الإلكتروني",
	"fields.phCode":                    "رمز الدولة",
	"fields.phone":                     "رقم الهاتف",
	"fields.maritalStatus":             "الحالة الاجتماعية",
	"fields.dependents":                "عدد المعالين",
	"fields.employmentStatus":          "الحالة الوظيفية",
	"fields.housingStatus":             "حالة السكن",
	"fields.currency":                  "العملة",
	"fields.monthlyIncome":             "الدخل الشهري",
	"fields.currentFinancialSituation": "الوضع المالي الحالي",
	"fields.employmentCircumstances":   "ظروف العمل",
	"fields.reasonForApplying":         "سبب التقديم",

	// Validation messages
	"validation.required":      "{field} مطلوب",
	"validation.minLength":     "{field} يجب ألا يقل عن {min} أحرف",
	"validation.alphanumeric":  "{field} يجب أن يحتوي على أحرف وأرقام وشرطات فقط",
	"validation.futureDate":    "{field} لا يمكن أن يكون في المستقبل",
	"validation.invalidDate":   "{field} يجب أن يكون تاريخًا صحيحًا",
	"validation.email":         "يرجى إدخال بريد إلكتروني صحيح",
	"validation.digitsOnly":    "رقم الهاتف يجب أن يحتوي على أرقام فقط",
	"validation.phoneDigits":   "رقم الهاتف يجب أن يتكون من {digits} أرقام بالضبط",
	"validation.numeric":       "{field} يجب أن يكون رقمًا",
	"validation.integer":       "{field} يجب أن يكون رقمًا صحيحًا",
	"validation.negative":      "{field} لا يمكن أن يكون سالبًا",
	"validation.maxDependents": "عدد المعالين لا يمكن أن يتجاوز {max}",
	"validation.positive":      "{field} لا يمكن أن يكون سالبًا",
	"validation.unknownCode":   "رمز الدولة غير معروف",

	// Suggestion guidance
	"ai.guidance.title":    "دعني أساعدك في هذا الحقل.",
	"ai.guidance.intro":    "يجب أن يصف هذا الحقل {context}. يمكنك ذكر:",
	"ai.guidance.option1":  "ظروفك الحالية ومدة استمرارها",
	"ai.guidance.option2":  "أي تغييرات حديثة أثرت على وضعك",
	"ai.guidance.option3":  "نوع الدعم الذي قد يحدث فرقًا",
	"ai.guidance.question": "هل ترغب في محاولة وصف ذلك بكلماتك الخاصة؟",

	// Suggestion prompts
	"ai.prompts.empty":          "اكتب فقرة قصيرة بصيغة المتكلم تصف {context} لطلب دعم اجتماعي.",
	"ai.prompts.helpRequest":    "طلب مقدم الطلب: \"{text}\". اكتب فقرة قصيرة بصيغة المتكلم تصف {context} لطلب دعم اجتماعي.",
	"ai.prompts.improveContent": "حسّن هذا الوصف عن {context} مع الحفاظ على المعنى وصيغة المتكلم: \"{text}\"",
	"ai.prompts.rewriteContent": "أعد صياغة هذا الوصف عن {context} بكلمات مختلفة مع الحفاظ على المعنى وصيغة المتكلم: \"{text}\"",
	"ai.prompts.generateFresh":  "اكتب فقرة قصيرة جديدة بصيغة المتكلم تصف {context} لطلب دعم اجتماعي.",

	// Suggestion field contexts
	"ai.context.currentFinancialSituation": "الوضع المالي الحالي",
	"ai.context.employmentCircumstances":   "ظروف العمل",
	"ai.context.reasonForApplying":         "سبب التقديم",

	// Suggestion service fallbacks
	"ai.fallback.notConfigured": "مفتاح الخدمة غير مهيأ.",
	"ai.fallback.noResponse":    "لا يوجد رد من الخدمة.",
	"ai.fallback.invalidKey":    "مفتاح الخدمة غير صالح. يرجى التحقق من الإعدادات.",
	"ai.fallback.rateLimit":     "تم تجاوز الحد المسموح. يرجى المحاولة لاحقًا.",
	"ai.fallback.unavailable":   "خدمة الاقتراحات غير متاحة مؤقتًا.",
	"ai.fallback.network":       "خطأ في الشبكة. يرجى المحاولة مرة أخرى.",
	"ai.fallback.generic":       "تعذر إنشاء الاقتراح.",

	// General messages
	"messages.submissionSuccess": "تم إرسال البيانات بنجاح!",
	"messages.submissionFailed":  "فشل الإرسال. إجاباتك محفوظة — يرجى المحاولة مرة أخرى.",
	"messages.unexpectedError":   "حدث خطأ غير متوقع. يرجى المحاولة مرة أخرى.",
}

var arLists = map[string][]string{
	"ai.detection.greetings": {
		"مرحبا", "أهلا", "اهلا", "السلام", "هاي",
	},
	"ai.detection.chatPhrases": {
		"كيف حالك", "شو الأخبار", "صباح الخير", "مساء الخير", "من أنت",
	},
}
