package amqp

import (
	"testing"
)

func TestCatalogRefreshMessageRoundTrip(t *testing.T) {
	msg := NewCatalogRefreshMessage("api request")
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := CatalogRefreshMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Reason != "api request" {
		t.Fatalf("reason = %q", decoded.Reason)
	}
	if !decoded.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp drifted: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestCatalogUpdatedMessageRoundTrip(t *testing.T) {
	body, err := NewCatalogUpdatedMessage(5).ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := CatalogUpdatedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Cards != 5 {
		t.Fatalf("cards = %d", decoded.Cards)
	}
}

func TestMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := CatalogRefreshMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := CatalogUpdatedMessageFromJSON([]byte(`"nope"`)); err == nil {
		t.Fatal("expected error")
	}
}
