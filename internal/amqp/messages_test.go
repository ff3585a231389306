package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventMessageRoundTrip(t *testing.T) {
	msg := NewLedgerEventMessage(ActionImported, "entry-1", "credit_card")

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}

	back, err := LedgerEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if back.Action != ActionImported || back.EntryID != "entry-1" || back.Source != "credit_card" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if time.Since(back.Timestamp) > time.Minute {
		t.Fatalf("timestamp not set: %v", back.Timestamp)
	}
}

func TestLedgerEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
