package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicClientCreated is the Watermill topic published when a Client is created.
const TopicClientCreated = "client.created"

// ClientCreatedEvent is published in the same transaction as the client row.
type ClientCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ClientID   int64     `json:"client_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
