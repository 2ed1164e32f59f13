package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/purelife/compass/internal/backup"
	"github.com/purelife/compass/internal/config"
	"github.com/purelife/compass/internal/ghl"
	"github.com/purelife/compass/internal/middleware"
)

// Router wires the submission pipeline's HTTP surface. The backup store and
// CRM adapter are injected so tests can swap them out.
type Router struct {
	cfg      config.Config
	crm      *ghl.Client
	backups  backup.Store
	validate *Validator
	logger   *zap.Logger

	started      time.Time
	now          func() time.Time
	newRequestID func() string
}

func NewRouter(cfg config.Config, crm *ghl.Client, backups backup.Store, logger *zap.Logger) *Router {
	return &Router{
		cfg:          cfg,
		crm:          crm,
		backups:      backups,
		validate:     NewValidator(),
		logger:       logger,
		started:      time.Now(),
		now:          func() time.Time { return time.Now().UTC() },
		newRequestID: uuid.NewString,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health-check", rt.handleHealthCheck)        // GET
	mux.HandleFunc("/api/submit-quiz", rt.handleSubmitQuiz)          // POST
	mux.HandleFunc("/api/test-ghl", rt.handleTestGHL)                // POST
	mux.HandleFunc("/api/backup-submissions", rt.handleBackupList)   // GET
	mux.HandleFunc("/api/admin/login", rt.handleAdminLogin)          // POST
	mux.HandleFunc("/", rt.handleNotFound)
}

// Handler returns the router wrapped in the full middleware chain.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	rt.Register(mux)

	limiter := middleware.NewRateLimiter(rt.cfg.RateLimitWindow, rt.cfg.RateLimitMax)

	var h http.Handler = limiter.Handler(mux)
	h = middleware.Gzip(h)
	h = middleware.CORS(rt.cfg.AllowedOrigins)(h)
	h = middleware.SecureHeaders(h)
	h = middleware.WithAdminAuth([]byte(rt.cfg.JWTSecret))(h)
	h = middleware.RequestLogger(rt.logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recover(rt.logger)(h)
	return h
}

func (rt *Router) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"error":   "Endpoint not found",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
