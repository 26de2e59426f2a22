package scanner

import (
	"context"
	"testing"
	"time"

	"safesurf/agent/internal/policy"
	"safesurf/agent/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSettings struct{ snap settings.Snapshot }

func (f fixedSettings) Snapshot() settings.Snapshot { return f.snap }

type recordingSink struct{ actions []Action }

func (r *recordingSink) Apply(a Action) error {
	r.actions = append(r.actions, a)
	return nil
}

func snapshotWith(enabled bool, categories map[string]bool) settings.Snapshot {
	p := policy.Defaults()
	p.Enabled = enabled
	if categories != nil {
		p.BlockedCategories = categories
	}
	return settings.Snapshot{Policy: p, FetchedAt: time.Now()}
}

func newScanner(snap settings.Snapshot) (*Scanner, *recordingSink) {
	sink := &recordingSink{}
	return &Scanner{
		Classifier: NewKeywordClassifier(),
		Settings:   fixedSettings{snap},
		Sink:       sink,
	}, sink
}

func TestScanRedactsFlaggedText(t *testing.T) {
	s, sink := newScanner(snapshotWith(true, nil))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "n1", Kind: TextNode, Content: "Welcome to our ONLINE CASINO, play now"},
		{ID: "n2", Kind: TextNode, Content: "today's weather forecast"},
	})
	assert.Equal(t, 1, n)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, Action{NodeID: "n1", Op: OpRedact, Category: "gambling"}, sink.actions[0])
}

func TestScanBlursFlaggedImage(t *testing.T) {
	s, sink := newScanner(snapshotWith(true, nil))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "img1", Kind: ImageNode, Content: "https://cdn.example/xxx/banner.jpg"},
	})
	assert.Equal(t, 1, n)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, OpBlur, sink.actions[0].Op)
	assert.Equal(t, "adult", sink.actions[0].Category)
}

func TestScanHonorsDisabledCategory(t *testing.T) {
	s, sink := newScanner(snapshotWith(true, map[string]bool{
		"adult": true, "violence": true, "drugs": true, "gambling": false,
	}))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "n1", Kind: TextNode, Content: "sports betting odds"},
	})
	assert.Zero(t, n)
	assert.Empty(t, sink.actions)
}

func TestScanNoopWhenFilterDisabled(t *testing.T) {
	s, sink := newScanner(snapshotWith(false, nil))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "n1", Kind: TextNode, Content: "graphic violence footage"},
	})
	assert.Zero(t, n)
	assert.Empty(t, sink.actions)
}

func TestScanSkipsUnknownNodeKinds(t *testing.T) {
	s, sink := newScanner(snapshotWith(true, nil))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "n1", Kind: "video", Content: "gore compilation"},
	})
	assert.Zero(t, n)
	assert.Empty(t, sink.actions)
}

func TestScanReplacesAdElements(t *testing.T) {
	s, sink := newScanner(snapshotWith(true, nil))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "ad1", Kind: AdNode, Content: "https://ads.example/banner.js"},
		{ID: "n1", Kind: TextNode, Content: "plain article text"},
	})
	assert.Equal(t, 1, n)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, Action{NodeID: "ad1", Op: OpReplace, Category: "ads"}, sink.actions[0])
}

func TestScanLeavesAdsWhenAdBlockingOff(t *testing.T) {
	snap := snapshotWith(true, nil)
	snap.Policy.AdBlocking = false
	s, sink := newScanner(snap)
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "ad1", Kind: AdNode, Content: "https://ads.example/banner.js"},
	})
	assert.Zero(t, n)
	assert.Empty(t, sink.actions)
}

// Ad substitution is driven by its own flag; turning the category filter off
// does not turn ads back on.
func TestAdSubstitutionIndependentOfCategoryFilter(t *testing.T) {
	s, sink := newScanner(snapshotWith(false, nil))
	n := s.ScanNodes(context.Background(), []Node{
		{ID: "ad1", Kind: AdNode, Content: "https://ads.example/banner.js"},
		{ID: "n1", Kind: TextNode, Content: "graphic violence footage"},
	})
	assert.Equal(t, 1, n)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, OpReplace, sink.actions[0].Op)
}

func TestRunConsumesMutations(t *testing.T) {
	s, sink := newScanner(snapshotWith(true, nil))
	mutations := make(chan Mutation, 2)
	mutations <- Mutation{Added: []Node{{ID: "a", Kind: TextNode, Content: "buy drugs online"}}}
	mutations <- Mutation{Added: []Node{{ID: "b", Kind: TextNode, Content: "harmless"}}}
	close(mutations)

	s.Run(context.Background(), mutations)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, "a", sink.actions[0].NodeID)
	assert.Equal(t, "drugs", sink.actions[0].Category)
}

func TestKeywordClassifierCaseInsensitive(t *testing.T) {
	c := NewKeywordClassifier()
	all := policy.Defaults().BlockedCategories

	cat, flagged := c.ClassifyText(context.Background(), "BEHEADING video leaked", all)
	assert.True(t, flagged)
	assert.Equal(t, "violence", cat)

	_, flagged = c.ClassifyText(context.Background(), "cooking recipes", all)
	assert.False(t, flagged)
}
