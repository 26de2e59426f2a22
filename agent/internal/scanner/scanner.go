package scanner

import (
	"context"

	"safesurf/agent/internal/logger"
	"safesurf/agent/internal/settings"
)

// NodeKind distinguishes the two content types the scanner can act on.
type NodeKind string

const (
	TextNode  NodeKind = "text"
	ImageNode NodeKind = "image"
	// AdNode is an element the host matched against its ad selector list.
	AdNode NodeKind = "ad"
)

// Node is one piece of page content. For text nodes Content is the text
// itself; for images it is the source URL (plus alt text when present).
type Node struct {
	ID      string   `json:"id"`
	Kind    NodeKind `json:"kind"`
	Content string   `json:"content"`
}

// Mutation is a DOM change notification: the nodes added since the last scan.
type Mutation struct {
	Added []Node `json:"added"`
}

// Op is the redaction applied to a flagged node.
type Op string

const (
	OpRedact  Op = "redact"  // replace text with a filtered marker
	OpBlur    Op = "blur"    // blur an image in place
	OpReplace Op = "replace" // swap an ad element for placeholder imagery
)

// Action tells the page side what to do with a flagged node.
type Action struct {
	NodeID   string `json:"node_id"`
	Op       Op     `json:"op"`
	Category string `json:"category"`
}

// Sink applies actions to the live page.
type Sink interface {
	Apply(a Action) error
}

// Scanner runs independently of the navigation gate: it scans the initial
// page content, then rescans incrementally as mutations arrive. Each mutation
// only costs a pass over its added nodes.
type Scanner struct {
	Classifier Classifier
	Settings   interface{ Snapshot() settings.Snapshot }
	Sink       Sink
}

// ScanNodes classifies the given nodes and applies actions for flagged ones.
// Returns the number of nodes acted on. Ad elements are substituted on the
// ad_blocking flag alone; the category filter's enabled switch does not gate
// them.
func (s *Scanner) ScanNodes(ctx context.Context, nodes []Node) int {
	snap := s.Settings.Snapshot()
	categories := snap.Policy.BlockedCategories

	acted := 0
	for _, n := range nodes {
		var category string
		var flagged bool
		var op Op
		switch n.Kind {
		case AdNode:
			if !snap.Policy.AdBlocking {
				continue
			}
			category, flagged, op = "ads", true, OpReplace
		case TextNode:
			if !snap.Policy.Enabled {
				continue
			}
			category, flagged = s.Classifier.ClassifyText(ctx, n.Content, categories)
			op = OpRedact
		case ImageNode:
			if !snap.Policy.Enabled {
				continue
			}
			category, flagged = s.Classifier.ClassifyImage(ctx, n.Content, categories)
			op = OpBlur
		default:
			continue
		}
		if !flagged {
			continue
		}
		if err := s.Sink.Apply(Action{NodeID: n.ID, Op: op, Category: category}); err != nil {
			logger.Errorf("apply %s to node %s failed: %v", op, n.ID, err)
			continue
		}
		acted++
	}
	return acted
}

// Run consumes mutation notifications until the channel closes or the context
// ends.
func (s *Scanner) Run(ctx context.Context, mutations <-chan Mutation) {
	for {
		select {
		case m, ok := <-mutations:
			if !ok {
				return
			}
			s.ScanNodes(ctx, m.Added)
		case <-ctx.Done():
			return
		}
	}
}
