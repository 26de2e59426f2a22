package gate

import (
	"context"
	"testing"
	"time"

	"safesurf/agent/internal/navigation"
	"safesurf/agent/internal/policy"
	"safesurf/agent/internal/reputation"
	"safesurf/agent/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSettings struct{ snap settings.Snapshot }

func (f fixedSettings) Snapshot() settings.Snapshot { return f.snap }

type fakeChecker struct {
	verdict reputation.Verdict
	calls   int
}

func (f *fakeChecker) Check(ctx context.Context, url string) reputation.Verdict {
	f.calls++
	return f.verdict
}

type fakeNavigator struct {
	redirects []string
	tabs      []int
}

func (f *fakeNavigator) Redirect(tabID int, target string) error {
	f.tabs = append(f.tabs, tabID)
	f.redirects = append(f.redirects, target)
	return nil
}

type fakeReporter struct{ reports []Decision }

func (f *fakeReporter) Report(d Decision) { f.reports = append(f.reports, d) }

func snapshotWith(enabled, restricted bool, whitelist ...string) settings.Snapshot {
	wl := make(map[string]struct{}, len(whitelist))
	for _, d := range whitelist {
		wl[d] = struct{}{}
	}
	p := policy.Defaults()
	p.Enabled = enabled
	p.TimeRestriction = policy.TimeRestriction{
		Enabled:   restricted,
		StartTime: "00:00",
		EndTime:   "23:59",
	}
	return settings.Snapshot{Policy: p, Whitelist: wl, FetchedAt: time.Now()}
}

func newGate(snap settings.Snapshot, checker *fakeChecker) (*Gate, *fakeNavigator, *fakeReporter) {
	nav := &fakeNavigator{}
	rep := &fakeReporter{}
	g := &Gate{
		Settings:    fixedSettings{snap},
		Checker:     checker,
		Navigator:   nav,
		Reporter:    rep,
		BlockedPage: "safesurf://blocked.html",
		Now:         func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return g, nav, rep
}

func TestWhitelistShortCircuits(t *testing.T) {
	// Time restriction active all day and the checker would say unsafe, yet
	// the whitelisted hostname is allowed with no further checks and no log.
	checker := &fakeChecker{verdict: reputation.Unsafe}
	g, nav, rep := newGate(snapshotWith(true, true, "school.example.com"), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 1, URL: "https://school.example.com/homework"})
	assert.Equal(t, Allowed, d.Outcome)
	assert.Zero(t, checker.calls)
	assert.Empty(t, nav.redirects)
	assert.Empty(t, rep.reports)
}

func TestTimeRestrictionBlocksWithoutReputationCheck(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Safe}
	g, nav, rep := newGate(snapshotWith(true, true), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 7, URL: "https://news.example.com/"})
	assert.Equal(t, BlockedByTime, d.Outcome)
	assert.Zero(t, checker.calls, "no reputation call when time-blocked")
	require.Len(t, nav.redirects, 1)
	assert.Equal(t, []int{7}, nav.tabs)
	assert.Equal(t, "safesurf://blocked.html?reason=Time+restricted", nav.redirects[0])
	assert.Empty(t, rep.reports, "time blocks are not logged upstream")
}

func TestUnsafeReputationBlocksAndLogsOnce(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Unsafe}
	g, nav, rep := newGate(snapshotWith(true, false), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 2, URL: "http://evil.example/"})
	assert.Equal(t, BlockedByReputation, d.Outcome)
	assert.Equal(t, 1, checker.calls)
	require.Len(t, nav.redirects, 1)
	assert.Equal(t, "safesurf://blocked.html?reason=Unsafe+website", nav.redirects[0])
	require.Len(t, rep.reports, 1)
	assert.Equal(t, "http://evil.example/", rep.reports[0].URL)
	assert.Equal(t, "unsafe_website", rep.reports[0].Outcome.String())
}

func TestUnknownVerdictAllows(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Unknown}
	g, nav, rep := newGate(snapshotWith(true, false), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 3, URL: "http://maybe.example/"})
	assert.Equal(t, Allowed, d.Outcome)
	assert.Equal(t, 1, checker.calls)
	assert.Empty(t, nav.redirects)
	assert.Empty(t, rep.reports)
}

func TestSafeVerdictAllows(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Safe}
	g, nav, rep := newGate(snapshotWith(true, false), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 3, URL: "http://ok.example/"})
	assert.Equal(t, Allowed, d.Outcome)
	assert.Empty(t, nav.redirects)
	assert.Empty(t, rep.reports)
}

func TestSubFrameNavigationsIgnored(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Unsafe}
	g, nav, rep := newGate(snapshotWith(true, true), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 4, FrameID: 2, URL: "http://evil.example/ad"})
	assert.Equal(t, Allowed, d.Outcome)
	assert.Zero(t, checker.calls)
	assert.Empty(t, nav.redirects)
	assert.Empty(t, rep.reports)
}

func TestDisabledPolicyAllowsEverything(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Unsafe}
	g, nav, _ := newGate(snapshotWith(false, true), checker)

	d := g.Handle(context.Background(), navigation.Event{TabID: 5, URL: "http://evil.example/"})
	assert.Equal(t, Allowed, d.Outcome)
	assert.Zero(t, checker.calls)
	assert.Empty(t, nav.redirects)
}

func TestOvernightWindowBlocksAtNight(t *testing.T) {
	checker := &fakeChecker{verdict: reputation.Safe}
	snap := snapshotWith(true, true)
	snap.Policy.TimeRestriction.StartTime = "21:00"
	snap.Policy.TimeRestriction.EndTime = "06:00"
	g, nav, _ := newGate(snap, checker)
	g.Now = func() time.Time { return time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC) }

	d := g.Handle(context.Background(), navigation.Event{TabID: 6, URL: "https://late.example/"})
	assert.Equal(t, BlockedByTime, d.Outcome)
	require.Len(t, nav.redirects, 1)

	// Noon is outside the overnight window.
	g.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	d = g.Handle(context.Background(), navigation.Event{TabID: 6, URL: "https://noon.example/"})
	assert.Equal(t, Allowed, d.Outcome)
}
