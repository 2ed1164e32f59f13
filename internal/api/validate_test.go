package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func validSubmit() *submitRequest {
	return &submitRequest{
		Contact: contactInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "Ada@Example.com",
			Phone:     "+1 202 555 0142",
			Tags:      []string{"Driver", "Action-Taker"},
			CustomFields: customFieldInput{
				QuizScore:     intPtr(58),
				ResultType:    "DRIVER",
				SectionScores: map[string]int{"vision": 12, "action": 12, "resilience": 12, "alignment": 11, "community": 11},
			},
		},
	}
}

func fieldsOf(details []ValidationDetail) []string {
	out := make([]string, len(details))
	for i, d := range details {
		out[i] = d.Field
	}
	return out
}

func TestValidateCleanRequest(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.Validate(validSubmit()))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	v := NewValidator()
	req := &submitRequest{}
	details := v.Validate(req)
	fields := fieldsOf(details)
	assert.Contains(t, fields, "contact.firstName")
	assert.Contains(t, fields, "contact.lastName")
	assert.Contains(t, fields, "contact.email")
	assert.Contains(t, fields, "contact.tags")
	assert.Contains(t, fields, "contact.customFields.quiz_score")
	assert.Contains(t, fields, "contact.customFields.result_type")
	assert.GreaterOrEqual(t, len(details), 6)
}

func TestValidateSingleRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*submitRequest)
		field  string
	}{
		{"bad email", func(r *submitRequest) { r.Contact.Email = "not-an-email" }, "contact.email"},
		{"bad phone", func(r *submitRequest) { r.Contact.Phone = "12" }, "contact.phone"},
		{"empty tags", func(r *submitRequest) { r.Contact.Tags = []string{} }, "contact.tags"},
		{"unknown result type", func(r *submitRequest) { r.Contact.CustomFields.ResultType = "WIZARD" }, "contact.customFields.result_type"},
		{"score too high", func(r *submitRequest) { r.Contact.CustomFields.QuizScore = intPtr(76) }, "contact.customFields.quiz_score"},
		{"score negative", func(r *submitRequest) { r.Contact.CustomFields.QuizScore = intPtr(-1) }, "contact.customFields.quiz_score"},
		{"missing section scores", func(r *submitRequest) { r.Contact.CustomFields.SectionScores = nil }, "contact.customFields.section_scores"},
	}
	v := NewValidator()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validSubmit()
			c.mutate(req)
			details := v.Validate(req)
			require.NotEmpty(t, details)
			assert.Contains(t, fieldsOf(details), c.field)
		})
	}
}

func TestValidateScoreZeroIsValid(t *testing.T) {
	v := NewValidator()
	req := validSubmit()
	req.Contact.CustomFields.QuizScore = intPtr(0)
	req.Contact.CustomFields.ResultType = "DREAMER"
	assert.Empty(t, v.Validate(req))
}

func TestValidatePhoneOptional(t *testing.T) {
	v := NewValidator()
	req := validSubmit()
	req.Contact.Phone = ""
	assert.Empty(t, v.Validate(req))
}

func TestValidatePartialBodyProducesDetails(t *testing.T) {
	// A minimal body like {"contact":{"firstName":"Test"}} must decode fine
	// and come back with concrete violations rather than a decode error.
	var req submitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"contact":{"firstName":"Test"}}`), &req))
	details := NewValidator().Validate(&req)
	assert.NotEmpty(t, details)
	for _, d := range details {
		assert.NotEmpty(t, d.Field)
		assert.NotEmpty(t, d.Message)
	}
}

func TestNormalize(t *testing.T) {
	v := NewValidator()
	req := validSubmit()
	req.Contact.FirstName = "  <script>alert(1)</script>Ada  "
	req.Contact.Email = "  ADA@Example.COM "

	sub := v.Normalize(req)
	assert.Equal(t, "Ada", sub.Contact.FirstName)
	assert.Equal(t, "ada@example.com", sub.Contact.Email)
	assert.Equal(t, 58, sub.Contact.CustomFields.QuizScore)
	assert.Equal(t, "DRIVER", sub.Contact.CustomFields.ResultType)
}
