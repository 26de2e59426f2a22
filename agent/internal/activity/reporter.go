package activity

import (
	"context"
	"time"

	"safesurf/agent/internal/backendapi"
	"safesurf/agent/internal/gate"
	"safesurf/agent/internal/logger"
)

// Reporter posts block decisions to the backend, fire and forget. A failed
// write is logged locally and dropped; it never affects a navigation.
type Reporter struct {
	api     *backendapi.Client
	timeout time.Duration
}

func NewReporter(api *backendapi.Client) *Reporter {
	return &Reporter{api: api, timeout: 10 * time.Second}
}

func (r *Reporter) Report(d gate.Decision) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		entry := backendapi.ActivityEntry{
			URL:       d.URL,
			Reason:    d.Outcome.String(),
			Timestamp: d.Timestamp.Unix(),
		}
		if err := r.api.PostActivity(ctx, entry); err != nil {
			logger.Errorf("activity report dropped: %v", err)
		}
	}()
}
