package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// LedgerEventMessage is a lightweight notification about a ledger mutation.
// It carries only the entry ID and the action; consumers that need the full
// entry fetch it from the API.
type LedgerEventMessage struct {
	Action    string    `json:"action"`
	EntryID   string    `json:"entryId"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(action, entryID, source string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:    action,
		EntryID:   entryID,
		Source:    source,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
