// Package audit carries the events emitted when short links are created and
// the sinks that record them.
package audit

import "time"

// TopicLinkCreated is the stream topic link creation events are published to.
const TopicLinkCreated = "link.created"

// LinkCreatedEvent is emitted after a link has been stored.
type LinkCreatedEvent struct {
	Code      string    `json:"code"`
	Target    string    `json:"target"`
	Custom    bool      `json:"custom"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}
