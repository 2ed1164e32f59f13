// Package client submits completed quiz payloads to the funnel backend,
// retrying with exponential backoff and falling back to local backup storage
// when every attempt fails.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/purelife/compass/internal/backup"
	"github.com/purelife/compass/internal/lead"
)

const (
	defaultAttempts       = 3
	defaultAttemptTimeout = 30 * time.Second
	defaultBaseDelay      = time.Second
	defaultMaxDelay       = 10 * time.Second
	maxJitter             = time.Second
)

// Result is the outcome of a Submit call. A failed submission with
// BackupStored true still carries the RequestID the user can reference.
type Result struct {
	Success      bool           `json:"success"`
	Data         map[string]any `json:"data,omitempty"`
	Attempt      int            `json:"attempt"`
	Err          string         `json:"error,omitempty"`
	BackupStored bool           `json:"backup_stored"`
	RequestID    string         `json:"request_id"`
}

// Client performs the single retried HTTP hop of the pipeline. One payload
// in, one Result out; all other stages are the backend's concern.
type Client struct {
	endpoint string
	httpc    *http.Client
	backups  backup.Store
	logger   *zap.Logger

	attempts       int
	attemptTimeout time.Duration
	baseDelay      time.Duration
	maxDelay       time.Duration
	jitter         func() time.Duration
	newRequestID   func() string
}

func New(endpoint string, backups backup.Store, logger *zap.Logger) *Client {
	return &Client{
		endpoint:       endpoint,
		httpc:          &http.Client{},
		backups:        backups,
		logger:         logger,
		attempts:       defaultAttempts,
		attemptTimeout: defaultAttemptTimeout,
		baseDelay:      defaultBaseDelay,
		maxDelay:       defaultMaxDelay,
		jitter:         func() time.Duration { return time.Duration(rand.Int63n(int64(maxJitter))) },
		newRequestID:   defaultRequestID,
	}
}

func defaultRequestID() string {
	return "req_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Submit sends the payload, retrying up to the attempt limit. The first 2xx
// wins. When every attempt fails the payload is written to the backup store
// and a failure Result is returned with a nil error. Cancelling ctx aborts
// the in-flight request and any backoff sleep without leaking timers.
func (c *Client) Submit(ctx context.Context, sub *lead.SubmissionRequest) (*Result, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}
	requestID := c.newRequestID()

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		data, err := c.attempt(ctx, body, requestID, attempt)
		if err == nil {
			c.logger.Info("submission accepted",
				zap.String("request_id", requestID),
				zap.Int("attempt", attempt))
			return &Result{Success: true, Data: data, Attempt: attempt, RequestID: requestID}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		c.logger.Warn("submission attempt failed",
			zap.String("request_id", requestID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < c.attempts {
			if err := c.wait(ctx, c.backoffDelay(attempt)); err != nil {
				return nil, err
			}
		}
	}

	res := &Result{
		Success:   false,
		Attempt:   c.attempts,
		Err:       lastErr.Error(),
		RequestID: requestID,
	}
	if _, err := c.backups.Add(backup.Record{RequestID: requestID, Payload: *sub}); err != nil {
		c.logger.Error("backup persistence failed",
			zap.String("request_id", requestID),
			zap.Error(err))
	} else {
		res.BackupStored = true
		c.logger.Info("submission stored in backup",
			zap.String("request_id", requestID))
	}
	return res, nil
}

func (c *Client) attempt(ctx context.Context, body []byte, requestID string, attempt int) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Retry-Attempt", strconv.Itoa(attempt))
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return data, nil
}

// backoffDelay computes min(maxDelay, base*2^(attempt-1) + jitter).
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.baseDelay << (attempt - 1)
	delay += c.jitter()
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	return delay
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
