package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the cleanup stream
const (
	EventBlobsOrphaned = "blobs_orphaned"
)

// Stream names
const (
	StreamCleanup = "stream:cleanup"
)

// Consumer group name for cleanup workers
const (
	ConsumerGroupCleanup = "cleanup_workers"
)

// CleanupEvent is published when rows referencing blobs are removed.
// Blobs are content-addressed, so a key listed here may still be
// referenced by other rows; the worker re-checks before deleting.
type CleanupEvent struct {
	Type      string   `json:"type"`
	Timestamp int64    `json:"timestamp"`
	BlobKeys  []string `json:"blob_keys,omitempty"`
}

// NewBlobsOrphanedEvent creates an event carrying blob keys that may
// have lost their last reference.
func NewBlobsOrphanedEvent(blobKeys []string) CleanupEvent {
	return CleanupEvent{
		Type:      EventBlobsOrphaned,
		Timestamp: time.Now().Unix(),
		BlobKeys:  blobKeys,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so the event is serialized
// to JSON in a "data" field.
func (e CleanupEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseCleanupEvent parses a CleanupEvent from Redis stream message values.
func ParseCleanupEvent(values map[string]interface{}) (CleanupEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return CleanupEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event CleanupEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return CleanupEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
