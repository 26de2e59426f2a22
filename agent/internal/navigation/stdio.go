package navigation

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"safesurf/agent/internal/logger"
	"safesurf/agent/internal/scanner"
)

// StdioHost speaks a line-delimited JSON protocol with the browser side:
// navigation and mutation events arrive one per line on the reader, redirect
// and redaction commands go out one per line on the writer. This is the
// native-messaging shape, minus the length prefix.
type StdioHost struct {
	events    chan Event
	mutations chan scanner.Mutation
	enc       *json.Encoder
	mu        sync.Mutex
}

// inbound envelope. Type "navigation" (or empty, for older hosts) carries a
// navigation event; "mutation" carries added DOM nodes.
type inboundMessage struct {
	Type string `json:"type"`
	Event
	Added []scanner.Node `json:"added"`
}

type redirectCommand struct {
	Action string `json:"action"`
	TabID  int    `json:"tab_id"`
	Target string `json:"target"`
}

type redactCommand struct {
	Action   string     `json:"action"`
	NodeID   string     `json:"node_id"`
	Op       scanner.Op `json:"op"`
	Category string     `json:"category"`
}

func NewStdioHost(r io.Reader, w io.Writer) *StdioHost {
	h := &StdioHost{
		events:    make(chan Event, 16),
		mutations: make(chan scanner.Mutation, 16),
		enc:       json.NewEncoder(w),
	}
	go h.readLoop(r)
	return h
}

func (h *StdioHost) readLoop(r io.Reader) {
	defer close(h.events)
	defer close(h.mutations)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg inboundMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			logger.Errorf("bad host message: %v", err)
			continue
		}
		switch msg.Type {
		case "mutation":
			h.mutations <- scanner.Mutation{Added: msg.Added}
		case "navigation", "":
			h.events <- msg.Event
		default:
			logger.Errorf("unknown host message type %q", msg.Type)
		}
	}
	if err := sc.Err(); err != nil {
		logger.Errorf("host stream closed: %v", err)
	}
}

func (h *StdioHost) Events() <-chan Event { return h.events }

func (h *StdioHost) Mutations() <-chan scanner.Mutation { return h.mutations }

func (h *StdioHost) Redirect(tabID int, target string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enc.Encode(redirectCommand{Action: "redirect", TabID: tabID, Target: target})
}

// Apply sends a redaction command for a flagged node, implementing
// scanner.Sink.
func (h *StdioHost) Apply(a scanner.Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enc.Encode(redactCommand{Action: "redact", NodeID: a.NodeID, Op: a.Op, Category: a.Category})
}
