package handler

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type healthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *healthHandler {
	return &healthHandler{db: db}
}

// Health probes store connectivity. A failed ping is a 503 so load balancers
// stop routing here.
func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	err := h.db.PingContext(r.Context())
	if err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	body := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}

	respondJSON(w, status, body)
}
