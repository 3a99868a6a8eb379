package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntrySyncMessage asks the worker to mirror one ledger entry to the
// household sheet. It carries only the id and version; the worker fetches
// the full entry from the database.
type EntrySyncMessage struct {
	MessageID string    `json:"message_id"`
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntrySyncMessage creates a sync message for the given stored entry.
func NewEntrySyncMessage(id, version int64) *EntrySyncMessage {
	return &EntrySyncMessage{
		MessageID: uuid.NewString(),
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *EntrySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntrySyncMessageFromJSON creates a message from JSON bytes.
func EntrySyncMessageFromJSON(data []byte) (*EntrySyncMessage, error) {
	var msg EntrySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
