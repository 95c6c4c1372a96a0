package rest

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck probes one upstream dependency.
type HealthCheck func(ctx context.Context) bool

// HealthHandler serves the liveness and dependency health endpoints.
type HealthHandler struct {
	db      dbPinger
	checks  map[string]HealthCheck
	version string
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. checks are the upstream AI
// services reported next to the database.
func NewHealthHandler(db dbPinger, checks map[string]HealthCheck, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		checks:  checks,
		version: version,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
}

// HealthResponse is the JSON body of the health endpoints.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live handles GET /health. It never touches dependencies.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Health handles GET /api/health. The database decides the status code;
// a failing AI service only degrades the report.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.checks)+1)
	var mu sync.Mutex
	var wg sync.WaitGroup

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check := h.checks[name]
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			st := CompStatus{Status: "down"}
			if check(ctx) {
				st = CompStatus{Status: "ok", Latency: time.Since(start).String()}
			}
			mu.Lock()
			components[name] = st
			mu.Unlock()
		}()
	}

	start := time.Now()
	dbErr := h.db.Ping(ctx)
	dbStatus := CompStatus{Status: "ok", Latency: time.Since(start).String()}
	if dbErr != nil {
		dbStatus = CompStatus{Status: "down"}
	}

	wg.Wait()
	components["database"] = dbStatus

	status, code := "ok", http.StatusOK
	switch {
	case dbErr != nil:
		status, code = "down", http.StatusServiceUnavailable
	case anyDown(components):
		status = "degraded"
	}

	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

func anyDown(c map[string]CompStatus) bool {
	for _, s := range c {
		if s.Status != "ok" {
			return true
		}
	}
	return false
}
