// Package ghl talks to the Go High Level REST API: contact creation and
// persona workflow triggers.
package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/purelife/compass/internal/config"
	"github.com/purelife/compass/internal/lead"
)

var (
	// ErrNotConfigured means no API key is set; every submission degrades to
	// backup-only mode instead of failing.
	ErrNotConfigured = errors.New("ghl api key not configured")
	// ErrUnavailable wraps any network error, timeout, or non-2xx status from
	// the CRM. The adapter never retries; the request handler owns recovery.
	ErrUnavailable = errors.New("ghl unavailable")
)

const requestTimeout = 10 * time.Second

// Client is the CRM adapter. Safe for concurrent use.
type Client struct {
	cfg    config.GHLConfig
	httpc  *http.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewClient(cfg config.GHLConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: requestTimeout},
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Configured reports whether the adapter can reach the CRM at all.
func (c *Client) Configured() bool { return c.cfg.Configured() }

// customField is GHL's flattened custom-field representation.
type customField struct {
	Key        string `json:"key"`
	FieldValue string `json:"field_value"`
}

type contactRequest struct {
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Tags            []string      `json:"tags"`
	CustomFields    []customField `json:"customFields"`
	PipelineID      string        `json:"pipelineId,omitempty"`
	PipelineStageID string        `json:"pipelineStageId,omitempty"`
}

type contactResponse struct {
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

// CreateContact creates a CRM contact for the lead and returns its CRM ID.
// Failures map to ErrUnavailable and are not retried here.
func (c *Client) CreateContact(ctx context.Context, contact *lead.Contact) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	sectionScores, err := json.Marshal(contact.CustomFields.SectionScores)
	if err != nil {
		return "", fmt.Errorf("encode section scores: %w", err)
	}
	completionDate := contact.CustomFields.CompletionDate
	if completionDate == "" {
		completionDate = c.now().Format(time.RFC3339)
	}
	referrer := contact.CustomFields.ReferrerSource
	if referrer == "" {
		referrer = "quiz"
	}

	body := contactRequest{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Tags:      contact.Tags,
		CustomFields: []customField{
			{Key: "quiz_score", FieldValue: strconv.Itoa(contact.CustomFields.QuizScore)},
			{Key: "result_type", FieldValue: contact.CustomFields.ResultType},
			{Key: "section_scores", FieldValue: string(sectionScores)},
			{Key: "completion_date", FieldValue: completionDate},
			{Key: "referrer_source", FieldValue: referrer},
		},
		PipelineID:      c.cfg.PipelineID,
		PipelineStageID: c.cfg.PipelineStageID,
	}

	var out contactResponse
	if err := c.post(ctx, "/contacts/", body, &out); err != nil {
		return "", err
	}
	c.logger.Info("ghl contact created",
		zap.String("contact_id", out.Contact.ID),
		zap.String("email", contact.Email))
	return out.Contact.ID, nil
}

// TriggerWorkflow fires the workflow configured for the persona bucket.
// A missing workflow is a logged no-op and any failure is swallowed: the
// contact record is the durable artifact, the workflow is best-effort.
// The return value reports whether the trigger went through.
func (c *Client) TriggerWorkflow(ctx context.Context, contactID, bucket string, eventData map[string]any) bool {
	workflowID := c.cfg.Workflows[bucket]
	if workflowID == "" {
		c.logger.Warn("no workflow configured for result type", zap.String("result_type", bucket))
		return false
	}

	event := map[string]any{"quiz_result_type": bucket}
	for k, v := range eventData {
		event[k] = v
	}
	body := map[string]any{
		"contactId": contactID,
		"eventData": event,
	}
	if err := c.post(ctx, "/workflows/"+workflowID+"/triggers", body, nil); err != nil {
		c.logger.Error("workflow trigger failed",
			zap.String("contact_id", contactID),
			zap.String("result_type", bucket),
			zap.String("workflow_id", workflowID),
			zap.Error(err))
		return false
	}
	c.logger.Info("workflow triggered",
		zap.String("contact_id", contactID),
		zap.String("result_type", bucket),
		zap.String("workflow_id", workflowID))
	return true
}

// TestConnection creates a minimal throwaway contact to verify credentials.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	body := contactRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Tags:      []string{"Test"},
		CustomFields: []customField{
			{Key: "quiz_score", FieldValue: "25"},
			{Key: "result_type", FieldValue: "DREAMER"},
		},
	}
	var out contactResponse
	if err := c.post(ctx, "/contacts/", body, &out); err != nil {
		return "", err
	}
	return out.Contact.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode ghl request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build ghl request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
	}
	return nil
}
