package telemetry

import (
	"sort"
	"sync"
	"time"
)

// HealthReport is the /healthz payload.
type HealthReport struct {
	Status string                 `json:"status"`
	Checks map[string]CheckReport `json:"checks,omitempty"`
}

// CheckReport is the latest outcome of one named dependency check.
type CheckReport struct {
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HealthTracker keeps the last outcome per dependency (upstream API, session
// store). A check that has never reported does not affect the status.
type HealthTracker struct {
	mu     sync.RWMutex
	checks map[string]CheckReport
	now    func() time.Time
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{
		checks: make(map[string]CheckReport),
		now:    time.Now,
	}
}

// Record stores the outcome of a check.
func (h *HealthTracker) Record(name string, err error) {
	if h == nil || name == "" {
		return
	}
	report := CheckReport{OK: err == nil, UpdatedAt: h.now()}
	if err != nil {
		report.Error = err.Error()
	}
	h.mu.Lock()
	h.checks[name] = report
	h.mu.Unlock()
}

// Report summarizes all checks. Status is "ok" unless a check last failed.
func (h *HealthTracker) Report() HealthReport {
	if h == nil {
		return HealthReport{Status: "ok"}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	report := HealthReport{Status: "ok"}
	if len(h.checks) == 0 {
		return report
	}
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report.Checks = make(map[string]CheckReport, len(names))
	for _, name := range names {
		check := h.checks[name]
		report.Checks[name] = check
		if !check.OK {
			report.Status = "degraded"
		}
	}
	return report
}
