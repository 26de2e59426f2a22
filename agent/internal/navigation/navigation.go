package navigation

import (
	"net/url"
)

// Event is one navigation about to happen in a browser tab. FrameID 0 is the
// outermost frame; anything else is an iframe and is ignored by the gate.
type Event struct {
	TabID   int    `json:"tab_id"`
	FrameID int    `json:"frame_id"`
	URL     string `json:"url"`
}

// Hostname extracts the lowercase hostname of the event URL, or "" when the
// URL does not parse.
func (e Event) Hostname() string {
	u, err := url.Parse(e.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Observer delivers navigation events from the browser host.
type Observer interface {
	Events() <-chan Event
}

// Navigator redirects a tab, used to send blocked navigations to the local
// blocked page.
type Navigator interface {
	Redirect(tabID int, target string) error
}

// BlockedPageURL builds the local blocked-page URL carrying the block reason
// as a query parameter.
func BlockedPageURL(base, reason string) string {
	return base + "?reason=" + url.QueryEscape(reason)
}
