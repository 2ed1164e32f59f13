package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nyaruka/phonenumbers"

	"github.com/purelife/compass/internal/lead"
)

// submitRequest is the inbound shape of POST /api/submit-quiz. It mirrors
// lead.SubmissionRequest but keeps quiz_score a pointer so that a missing
// score is distinguishable from a legitimate zero.
type submitRequest struct {
	Contact  contactInput  `json:"contact"`
	Metadata lead.Metadata `json:"metadata"`
}

type contactInput struct {
	FirstName    string            `json:"firstName" validate:"required,max=50"`
	LastName     string            `json:"lastName" validate:"required,max=50"`
	Email        string            `json:"email" validate:"required,email"`
	Phone        string            `json:"phone" validate:"omitempty,phone"`
	Tags         []string          `json:"tags" validate:"required,min=1,dive,required"`
	CustomFields customFieldInput  `json:"customFields"`
}

// customFieldInput range-checks the scored fields. section_scores is only
// required to be an object; its values are not range-validated (known gap,
// kept deliberately).
type customFieldInput struct {
	QuizScore           *int           `json:"quiz_score" validate:"required"`
	ResultType          string         `json:"result_type" validate:"required,oneof=DREAMER BUILDER DRIVER LEADER"`
	SectionScores       map[string]int `json:"section_scores" validate:"required"`
	CompletionDate      string         `json:"completion_date"`
	ReferrerSource      string         `json:"referrer_source"`
	TimeTakenSeconds    int            `json:"time_taken_seconds"`
	PersonalizedMessage string         `json:"personalized_message"`
	StrongestSection    string         `json:"strongest_section"`
	WeakestSection      string         `json:"weakest_section"`
	QuizVersion         string         `json:"quiz_version"`
}

// ValidationDetail is one violated rule in a 400 response.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator checks submissions before anything touches the CRM. All
// violations are collected and reported together.
type Validator struct {
	v        *validator.Validate
	sanitize *bluemonday.Policy
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		num, err := phonenumbers.Parse(fl.Field().String(), "US")
		return err == nil && phonenumbers.IsValidNumber(num)
	})
	return &Validator{v: v, sanitize: bluemonday.StrictPolicy()}
}

// Validate returns every violated rule, or nil when the request is clean.
func (val *Validator) Validate(req *submitRequest) []ValidationDetail {
	var details []ValidationDetail

	if err := val.v.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []ValidationDetail{{Field: "request", Message: err.Error()}}
		}
		for _, fe := range verrs {
			details = append(details, ValidationDetail{
				Field:   fieldPath(fe),
				Message: messageFor(fe),
			})
		}
	}

	// Range rules on quiz_score apply only when the field is present; the
	// required rule above covers absence.
	if s := req.Contact.CustomFields.QuizScore; s != nil && (*s < 0 || *s > 75) {
		details = append(details, ValidationDetail{
			Field:   "contact.customFields.quiz_score",
			Message: "quiz_score must be an integer between 0 and 75",
		})
	}
	return details
}

// Normalize sanitizes and canonicalizes the validated input into the
// immutable lead payload: names are HTML-stripped and trimmed, the email is
// lowercased.
func (val *Validator) Normalize(req *submitRequest) *lead.SubmissionRequest {
	c := req.Contact
	score := 0
	if c.CustomFields.QuizScore != nil {
		score = *c.CustomFields.QuizScore
	}
	return &lead.SubmissionRequest{
		Contact: lead.Contact{
			FirstName: strings.TrimSpace(val.sanitize.Sanitize(c.FirstName)),
			LastName:  strings.TrimSpace(val.sanitize.Sanitize(c.LastName)),
			Email:     strings.ToLower(strings.TrimSpace(c.Email)),
			Phone:     strings.TrimSpace(c.Phone),
			Tags:      c.Tags,
			CustomFields: lead.CustomFields{
				QuizScore:           score,
				ResultType:          c.CustomFields.ResultType,
				SectionScores:       c.CustomFields.SectionScores,
				CompletionDate:      c.CustomFields.CompletionDate,
				ReferrerSource:      c.CustomFields.ReferrerSource,
				TimeTakenSeconds:    c.CustomFields.TimeTakenSeconds,
				PersonalizedMessage: c.CustomFields.PersonalizedMessage,
				StrongestSection:    c.CustomFields.StrongestSection,
				WeakestSection:      c.CustomFields.WeakestSection,
				QuizVersion:         c.CustomFields.QuizVersion,
			},
		},
		Metadata: req.Metadata,
	}
}

func fieldPath(fe validator.FieldError) string {
	// StructNamespace looks like submitRequest.Contact.CustomFields.ResultType;
	// rewrite it into the JSON path the client sent.
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = jsonName(p)
	}
	return strings.Join(parts, ".")
}

func jsonName(structField string) string {
	switch structField {
	case "Contact":
		return "contact"
	case "Metadata":
		return "metadata"
	case "CustomFields":
		return "customFields"
	case "FirstName":
		return "firstName"
	case "LastName":
		return "lastName"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "Tags":
		return "tags"
	case "QuizScore":
		return "quiz_score"
	case "ResultType":
		return "result_type"
	case "SectionScores":
		return "section_scores"
	default:
		return structField
	}
}

func messageFor(fe validator.FieldError) string {
	name := jsonName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", name, fe.Param())
	case "email":
		return "email must be a valid email address"
	case "phone":
		return "phone must be a valid phone number"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
