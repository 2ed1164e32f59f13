package lead

// CustomFields carries the quiz outcome attached to a CRM contact. Field
// names are the CRM custom-field keys.
type CustomFields struct {
	QuizScore           int            `json:"quiz_score"`
	ResultType          string         `json:"result_type"`
	SectionScores       map[string]int `json:"section_scores"`
	CompletionDate      string         `json:"completion_date"`
	ReferrerSource      string         `json:"referrer_source"`
	TimeTakenSeconds    int            `json:"time_taken_seconds"`
	PersonalizedMessage string         `json:"personalized_message"`
	StrongestSection    string         `json:"strongest_section,omitempty"`
	WeakestSection      string         `json:"weakest_section,omitempty"`
	QuizVersion         string         `json:"quiz_version,omitempty"`
}

// Contact is the normalized lead forwarded to the CRM. Built once per quiz
// completion and not mutated afterwards.
type Contact struct {
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Tags         []string     `json:"tags"`
	CustomFields CustomFields `json:"customFields"`
}

// Metadata is the client-side envelope sent alongside the contact.
type Metadata struct {
	QuizVersion      string `json:"quiz_version"`
	Timestamp        int64  `json:"timestamp"`
	UserAgent        string `json:"user_agent"`
	ScreenResolution string `json:"screen_resolution,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
	Referrer         string `json:"referrer,omitempty"`
	PageURL          string `json:"page_url,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
}

// SubmissionRequest is the wire body for POST /api/submit-quiz. Sent once;
// no idempotency key is attached, so client retries can create duplicate CRM
// contacts (known, accepted gap).
type SubmissionRequest struct {
	Contact  Contact  `json:"contact"`
	Metadata Metadata `json:"metadata"`
}
