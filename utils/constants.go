// File: utils/constants.go
package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CatalogCachePrefix is the prefix used for Redis activity catalog cache keys.
const CatalogCachePrefix = "catalog:"

// EventChannelPrefix prefixes the pub/sub channel of one itinerary.
const EventChannelPrefix = "itinerary:"

// DefaultReplyTimeout bounds how long an itinerary shows the assistant as typing.
const DefaultReplyTimeout = 2 * time.Minute

// NewPushKey returns a time-ordered key: keys generated later sort after earlier ones.
func NewPushKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

// NewRequestID returns a random reply request identifier.
func NewRequestID() string {
	return uuid.NewString()
}
