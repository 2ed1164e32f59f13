package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func monitorFor(srv *httptest.Server) *Monitor {
	return NewMonitor(srv.URL, 2*time.Second, Thresholds{
		ResponseTime:        time.Second,
		ConsecutiveFailures: 3,
	})
}

func healthyBackend(backupStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health-check":
			w.Write([]byte(`{"status":"healthy"}`))
		case "/api/backup-submissions":
			w.WriteHeader(backupStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestCheckHealthyBackend(t *testing.T) {
	srv := httptest.NewServer(healthyBackend(http.StatusOK))
	defer srv.Close()

	m := monitorFor(srv)
	if _, err := m.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !m.metrics.Healthy || m.metrics.TotalChecks != 1 || m.metrics.Failures != 0 {
		t.Fatalf("metrics: %+v", m.metrics)
	}
}

func TestCheckAcceptsForbiddenBackupEndpoint(t *testing.T) {
	// In production the backup endpoint answers 403; that still counts as up.
	srv := httptest.NewServer(healthyBackend(http.StatusForbidden))
	defer srv.Close()

	if _, err := monitorFor(srv).Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckUnhealthyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health-check" {
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := monitorFor(srv)
	if _, err := m.Check(context.Background()); err == nil {
		t.Fatal("expected error for degraded status")
	}
	if m.metrics.Healthy || m.metrics.ConsecutiveFailures != 1 {
		t.Fatalf("metrics: %+v", m.metrics)
	}
}

func TestCheckConsecutiveFailuresResetOnSuccess(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		healthyBackend(http.StatusOK)(w, r)
	}))
	defer srv.Close()

	m := monitorFor(srv)
	m.Check(context.Background())
	m.Check(context.Background())
	if m.metrics.ConsecutiveFailures != 2 {
		t.Fatalf("consecutive=%d, want 2", m.metrics.ConsecutiveFailures)
	}

	healthy = true
	if _, err := m.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if m.metrics.ConsecutiveFailures != 0 || m.metrics.Failures != 2 {
		t.Fatalf("metrics: %+v", m.metrics)
	}
}
