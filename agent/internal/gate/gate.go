package gate

import (
	"context"
	"time"

	"safesurf/agent/internal/logger"
	"safesurf/agent/internal/navigation"
	"safesurf/agent/internal/policy"
	"safesurf/agent/internal/reputation"
	"safesurf/agent/internal/settings"
)

// Outcome of one navigation decision.
type Outcome int

const (
	Allowed Outcome = iota
	BlockedByTime
	BlockedByReputation
)

func (o Outcome) String() string {
	switch o {
	case BlockedByTime:
		return "time_restricted"
	case BlockedByReputation:
		return "unsafe_website"
	default:
		return "allowed"
	}
}

// Decision is the terminal result for one navigation event.
type Decision struct {
	Outcome   Outcome
	Reason    string
	URL       string
	Timestamp time.Time
}

// SettingsSource provides the current policy snapshot.
type SettingsSource interface {
	Snapshot() settings.Snapshot
}

// Checker looks up a URL's reputation.
type Checker interface {
	Check(ctx context.Context, url string) reputation.Verdict
}

// Reporter records a blocking decision upstream, best effort.
type Reporter interface {
	Report(d Decision)
}

// Gate decides, per top-level navigation, whether to allow or block. Checks
// run in a fixed short-circuit order: whitelist, time window, reputation.
type Gate struct {
	Settings    SettingsSource
	Checker     Checker
	Navigator   navigation.Navigator
	Reporter    Reporter
	BlockedPage string

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
	// CheckTimeout bounds the reputation lookup so a slow provider cannot
	// stall navigation.
	CheckTimeout time.Duration
}

const defaultCheckTimeout = 3 * time.Second

// Decide computes the outcome for one navigation event. It has no side
// effects; Handle applies them in order.
func (g *Gate) Decide(ctx context.Context, ev navigation.Event) Decision {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	d := Decision{Outcome: Allowed, URL: ev.URL, Timestamp: now()}

	snap := g.Settings.Snapshot()
	if !snap.Policy.Enabled {
		return d
	}

	// 1. Whitelist short-circuits everything, including time restrictions.
	if snap.Whitelisted(ev.Hostname()) {
		return d
	}

	// 2. Time window: pure check, no I/O, no reputation call when it hits.
	if snap.Policy.TimeRestriction.Enabled {
		w, err := policy.WindowOf(snap.Policy.TimeRestriction)
		if err != nil {
			logger.Errorf("bad restriction window: %v", err)
		} else if policy.IsRestricted(policy.MinuteOfDay(d.Timestamp), w, true) {
			d.Outcome = BlockedByTime
			d.Reason = "Time restricted"
			return d
		}
	}

	// 3. Reputation, bounded by the check timeout. Unknown is treated as
	// Safe: fail open rather than break browsing on a provider outage.
	timeout := g.CheckTimeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if g.Checker.Check(cctx, ev.URL) == reputation.Unsafe {
		d.Outcome = BlockedByReputation
		d.Reason = "Unsafe website"
	}
	return d
}

// Handle runs the gate for one event. Sub-frame navigations are ignored. The
// redirect is issued before the activity report is attempted, so a failed or
// slow log write never delays the navigation outcome.
func (g *Gate) Handle(ctx context.Context, ev navigation.Event) Decision {
	if ev.FrameID != 0 {
		return Decision{Outcome: Allowed, URL: ev.URL}
	}
	d := g.Decide(ctx, ev)
	switch d.Outcome {
	case BlockedByTime:
		g.redirect(ev.TabID, d.Reason)
	case BlockedByReputation:
		g.redirect(ev.TabID, d.Reason)
		if g.Reporter != nil {
			g.Reporter.Report(d)
		}
	}
	return d
}

func (g *Gate) redirect(tabID int, reason string) {
	if g.Navigator == nil {
		return
	}
	if err := g.Navigator.Redirect(tabID, navigation.BlockedPageURL(g.BlockedPage, reason)); err != nil {
		logger.Errorf("redirect tab %d failed: %v", tabID, err)
	}
}
