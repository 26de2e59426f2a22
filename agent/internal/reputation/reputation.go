package reputation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"safesurf/agent/internal/logger"
)

// Verdict is the outcome of a reputation lookup. Unknown covers every failure
// mode (network error, timeout, malformed response); callers treat Unknown as
// Safe. Failing open here is deliberate: a reputation outage must not take
// down browsing.
type Verdict int

const (
	Safe Verdict = iota
	Unsafe
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

const (
	clientID       = "SafeSurf"
	clientVersion  = "1.0.0"
	defaultTimeout = 3 * time.Second
)

// Safe Browsing v4 threatMatches:find wire format.
type findRequest struct {
	Client     clientInfo `json:"client"`
	ThreatInfo threatInfo `json:"threatInfo"`
}

type clientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type threatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []threatEntry `json:"threatEntries"`
}

type threatEntry struct {
	URL string `json:"url"`
}

type findResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

type Client struct {
	Endpoint string
	APIKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		Endpoint: endpoint,
		APIKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Check asks the reputation service about one URL. There is no retry: the
// caller is holding up a navigation, so one attempt inside the client timeout
// is all this path gets.
func (c *Client) Check(ctx context.Context, rawURL string) Verdict {
	payload := findRequest{
		Client: clientInfo{ClientID: clientID, ClientVersion: clientVersion},
		ThreatInfo: threatInfo{
			ThreatTypes:      []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE"},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    []threatEntry{{URL: rawURL}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Unknown
	}

	endpoint := c.Endpoint
	if c.APIKey != "" {
		endpoint += "?key=" + c.APIKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Unknown
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Errorf("reputation lookup failed: %v", err)
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Errorf("reputation lookup returned status %d", resp.StatusCode)
		return Unknown
	}
	var out findResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Errorf("reputation response malformed: %v", err)
		return Unknown
	}
	if len(out.Matches) > 0 {
		return Unsafe
	}
	return Safe
}
