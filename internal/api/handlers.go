package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/purelife/compass/internal/backup"
	"github.com/purelife/compass/internal/ghl"
	"github.com/purelife/compass/internal/lead"
	"github.com/purelife/compass/internal/middleware"
)

const adminTokenTTL = time.Hour

// GET /api/health-check
func (rt *Router) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	ghlStatus := "not_configured"
	if rt.crm.Configured() {
		ghlStatus = "configured"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": rt.now().Format(time.RFC3339),
		"uptime":    time.Since(rt.started).Seconds(),
		"services": map[string]string{
			"api":            "operational",
			"ghl_connection": ghlStatus,
			"backup_storage": "operational",
		},
	})
}

// POST /api/submit-quiz
//
// Pipeline for one request: validate, then create the CRM contact and fire
// the persona workflow. A CRM failure or an unconfigured CRM degrades to a
// backup write; validation failure never reaches the CRM.
func (rt *Router) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	start := time.Now()
	requestID := middleware.RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = rt.newRequestID()
	}
	log := rt.logger.With(zap.String("request_id", requestID))
	log.Info("quiz submission received")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if details := rt.validate.Validate(&req); len(details) > 0 {
		log.Warn("validation failed", zap.Int("violations", len(details)))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Validation failed",
			"details": details,
		})
		return
	}

	sub := rt.validate.Normalize(&req)

	if !rt.crm.Configured() {
		rt.storeBackup(log, requestID, sub)
		log.Warn("ghl not configured, submission stored for backup")
		writeJSON(w, http.StatusOK, map[string]any{
			"success":         true,
			"contact_id":      "backup_" + requestID,
			"message":         "Submission stored (GHL not configured)",
			"processing_time": time.Since(start).Milliseconds(),
		})
		return
	}

	contactID, err := rt.crm.CreateContact(r.Context(), &sub.Contact)
	if err != nil {
		log.Error("ghl contact creation failed", zap.Error(err))
		rt.storeBackup(log, requestID, sub)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":         false,
			"error":           "Submission failed",
			"message":         "Please try again. Your information has been saved.",
			"request_id":      requestID,
			"processing_time": time.Since(start).Milliseconds(),
		})
		return
	}

	workflowTriggered := rt.crm.TriggerWorkflow(r.Context(), contactID, sub.Contact.CustomFields.ResultType, map[string]any{
		"quiz_score":     sub.Contact.CustomFields.QuizScore,
		"section_scores": sub.Contact.CustomFields.SectionScores,
	})

	log.Info("quiz submission completed",
		zap.String("contact_id", contactID),
		zap.Bool("workflow_triggered", workflowTriggered),
		zap.Int64("processing_time", time.Since(start).Milliseconds()))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"contact_id":         contactID,
		"workflow_triggered": workflowTriggered,
		"processing_time":    time.Since(start).Milliseconds(),
	})
}

// storeBackup persists a record for manual reconciliation. A storage failure
// is logged but never changes the HTTP response: the primary failure already
// happened.
func (rt *Router) storeBackup(log *zap.Logger, requestID string, sub *lead.SubmissionRequest) {
	if _, err := rt.backups.Add(backup.Record{RequestID: requestID, Payload: *sub}); err != nil {
		log.Error("backup storage failed", zap.Error(err))
		return
	}
	log.Info("submission added to backup storage")
}

// POST /api/test-ghl
func (rt *Router) handleTestGHL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	contactID, err := rt.crm.TestConnection(r.Context())
	if err != nil {
		if errors.Is(err, ghl.ErrNotConfigured) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "GHL API key not configured",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "GHL connection failed",
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"contact_id": contactID,
		"message":    "GHL connection successful",
	})
}

// GET /api/backup-submissions
//
// Reconciliation surface. Open in development; in production it requires an
// admin token minted via /api/admin/login.
func (rt *Router) handleBackupList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if rt.cfg.Production() && !middleware.IsAdmin(r.Context()) {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error": "Not available in production",
		})
		return
	}
	records, err := rt.backups.List()
	if err != nil {
		rt.logger.Error("backup list failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Backup storage unavailable",
		})
		return
	}
	if records == nil {
		records = []backup.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": records,
		"count":       len(records),
	})
}

// POST /api/admin/login
func (rt *Router) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if rt.cfg.AdminKeyHash == "" {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"error":   "Admin login is not configured",
		})
		return
	}
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "key required",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rt.cfg.AdminKeyHash), []byte(req.Key)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "invalid key",
		})
		return
	}
	token, err := middleware.SignAdminToken([]byte(rt.cfg.JWTSecret), adminTokenTTL)
	if err != nil {
		rt.logger.Error("admin token signing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "token signing failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"token":      token,
		"expires_in": int(adminTokenTTL.Seconds()),
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"success": false,
		"error":   "method not allowed",
	})
}
