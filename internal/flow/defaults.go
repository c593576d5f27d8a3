package flow

import "placementwiz/internal/posting"

func field(key, label string, rules ...posting.Rule) posting.Field {
	return posting.Field{Key: key, Label: label, Rules: rules}
}

const (
	required   = posting.RuleRequired
	url        = posting.RuleURL
	futureDate = posting.RuleFutureDate
	number     = posting.RuleNumber
	email      = posting.RuleEmail
)

var companySection = Section{
	Name:  "company",
	Label: "Company Details",
	Icon:  "🏢",
	Fields: []posting.Field{
		field("company_name", "Company name", required),
		field("company_website", "Company website", url),
		field("location", "Location", required),
		field("contact_email", "Recruiter email", email),
	},
}

var eligibilitySection = Section{
	Name:  "eligibility",
	Label: "Eligibility",
	Icon:  "🎓",
	Fields: []posting.Field{
		field("branches", "Eligible branches", required),
		field("batch", "Batch", required),
		field("min_cgpa", "Minimum CGPA", number),
	},
}

var defaultFlows = map[posting.Kind][]Section{
	posting.KindJob: {
		companySection,
		{
			Name:  "role",
			Label: "Job Details",
			Icon:  "💼",
			Fields: []posting.Field{
				field("role", "Role", required),
				field("job_type", "Job type (full-time / contract)", required),
				field("ctc", "CTC (LPA)", number),
				field("description", "Description", required),
			},
		},
		eligibilitySection,
		{
			Name:  "application",
			Label: "Application",
			Icon:  "📝",
			Fields: []posting.Field{
				field("apply_link", "Application link", required, url),
				field("deadline", "Deadline (YYYY-MM-DD)", required, futureDate),
			},
		},
	},
	posting.KindInternship: {
		companySection,
		{
			Name:  "internship",
			Label: "Internship Details",
			Icon:  "🧑‍💻",
			Fields: []posting.Field{
				field("role", "Role", required),
				field("duration", "Duration", required),
				field("stipend", "Monthly stipend", number),
				field("mode", "Mode (remote / onsite / hybrid)", required),
			},
		},
		eligibilitySection,
		{
			Name:  "application",
			Label: "Application",
			Icon:  "📝",
			Fields: []posting.Field{
				field("apply_link", "Application link", required, url),
				field("deadline", "Deadline (YYYY-MM-DD)", required, futureDate),
			},
		},
	},
	posting.KindExam: {
		{
			Name:  "details",
			Label: "Exam Details",
			Icon:  "📘",
			Fields: []posting.Field{
				field("exam_name", "Exam name", required),
				field("conducting_body", "Conducting body", required),
				field("exam_date", "Exam date (YYYY-MM-DD)", required, futureDate),
			},
		},
		{
			Name:  "eligibility",
			Label: "Eligibility",
			Icon:  "🎓",
			Fields: []posting.Field{
				field("eligibility", "Eligibility criteria", required),
				field("age_limit", "Upper age limit", number),
			},
		},
		{
			Name:  "syllabus",
			Label: "Syllabus",
			Icon:  "📚",
			Fields: []posting.Field{
				field("syllabus", "Syllabus summary", required),
				field("material_link", "Study material link", url),
			},
		},
		{
			Name:  "registration",
			Label: "Registration",
			Icon:  "📝",
			Fields: []posting.Field{
				field("registration_link", "Registration link", required, url),
				field("deadline", "Registration deadline (YYYY-MM-DD)", required, futureDate),
				field("fee", "Application fee", number),
			},
		},
	},
}
