package amqp

import (
	"encoding/json"
	"time"
)

// Record kinds carried in sync messages.
const (
	KindMonthly        = "monthly"
	KindBalanceForward = "balance_forward"
)

// RecordSavedMessage notifies the report worker that a record was written.
// It carries only the record's key; the worker re-reads the collection
// from storage before rebuilding.
type RecordSavedMessage struct {
	Kind      string    `json:"kind"`
	Year      int       `json:"year"`
	Month     int       `json:"month,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSavedMessage creates a sync message for the given record key.
// Month is ignored for balance-forward records.
func NewRecordSavedMessage(kind string, year, month int) *RecordSavedMessage {
	if kind == KindBalanceForward {
		month = 0
	}
	return &RecordSavedMessage{
		Kind:      kind,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSavedMessageFromJSON creates a message from JSON bytes
func RecordSavedMessageFromJSON(data []byte) (*RecordSavedMessage, error) {
	var msg RecordSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
