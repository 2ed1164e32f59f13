package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Thresholds are the alert limits for the watch loop.
type Thresholds struct {
	ResponseTime        time.Duration
	ConsecutiveFailures int
}

// Metrics accumulates check results across a watch run.
type Metrics struct {
	TotalChecks         int
	Failures            int
	ConsecutiveFailures int
	AvgResponseTime     time.Duration
	Healthy             bool
}

// Monitor polls the quiz API and tracks rolling health metrics.
type Monitor struct {
	baseURL    string
	httpc      *http.Client
	thresholds Thresholds
	metrics    Metrics
}

func NewMonitor(baseURL string, timeout time.Duration, thresholds Thresholds) *Monitor {
	return &Monitor{
		baseURL:    baseURL,
		httpc:      &http.Client{Timeout: timeout},
		thresholds: thresholds,
		metrics:    Metrics{Healthy: true},
	}
}

// Run polls until ctx is cancelled, writing one status line per check.
func (m *Monitor) Run(ctx context.Context, interval time.Duration, out io.Writer) error {
	fmt.Fprintf(out, "watching %s every %s\n", m.baseURL, interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.report(ctx, out)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "stopped after %d checks (%d failures)\n", m.metrics.TotalChecks, m.metrics.Failures)
			return nil
		case <-ticker.C:
			m.report(ctx, out)
		}
	}
}

func (m *Monitor) report(ctx context.Context, out io.Writer) {
	elapsed, err := m.Check(ctx)
	stamp := time.Now().Format(time.RFC3339)
	switch {
	case err != nil:
		fmt.Fprintf(out, "%s FAIL (%d consecutive): %v\n", stamp, m.metrics.ConsecutiveFailures, err)
		if m.metrics.ConsecutiveFailures >= m.thresholds.ConsecutiveFailures {
			fmt.Fprintf(out, "%s ALERT: %d consecutive failures\n", stamp, m.metrics.ConsecutiveFailures)
		}
	case elapsed > m.thresholds.ResponseTime:
		fmt.Fprintf(out, "%s SLOW: %s (threshold %s)\n", stamp, elapsed, m.thresholds.ResponseTime)
	default:
		fmt.Fprintf(out, "%s OK: %s (avg %s)\n", stamp, elapsed, m.metrics.AvgResponseTime)
	}
}

// Check probes the health and backup endpoints concurrently and updates the
// metrics. It returns the health check's response time.
func (m *Monitor) Check(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return m.checkHealth(gctx) })
	g.Go(func() error {
		// Reachability only: 200 in dev, 403 in production are both alive.
		return m.probe(gctx, "/api/backup-submissions", http.StatusOK, http.StatusForbidden)
	})

	err := g.Wait()
	elapsed := time.Since(start)
	m.record(elapsed, err)
	return elapsed, err
}

func (m *Monitor) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/api/health-check", nil)
	if err != nil {
		return err
	}
	resp, err := m.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("service reports status %q", health.Status)
	}
	return nil
}

func (m *Monitor) probe(ctx context.Context, path string, acceptable ...int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := m.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	for _, code := range acceptable {
		if resp.StatusCode == code {
			return nil
		}
	}
	return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
}

func (m *Monitor) record(elapsed time.Duration, err error) {
	m.metrics.TotalChecks++
	if err != nil {
		m.metrics.Failures++
		m.metrics.ConsecutiveFailures++
		m.metrics.Healthy = false
		return
	}
	m.metrics.ConsecutiveFailures = 0
	m.metrics.Healthy = true
	// Running average over successful checks.
	successes := m.metrics.TotalChecks - m.metrics.Failures
	prev := m.metrics.AvgResponseTime * time.Duration(successes-1)
	m.metrics.AvgResponseTime = (prev + elapsed) / time.Duration(successes)
}
