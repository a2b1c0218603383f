package websocket

import (
	"encoding/json"
	"testing"
)

func TestEventPayloadShape(t *testing.T) {
	event := Event{
		Type:      EventStatusChanged,
		ID:        42,
		Reference: "LAU123456",
		Status:    "Completed",
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to marshal event: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}

	if decoded["type"] != "STATUS_CHANGED" {
		t.Errorf("type = %v, want STATUS_CHANGED", decoded["type"])
	}
	if decoded["reference"] != "LAU123456" {
		t.Errorf("reference = %v, want LAU123456", decoded["reference"])
	}
	if decoded["id"] != float64(42) {
		t.Errorf("id = %v, want 42", decoded["id"])
	}
}

func TestBroadcastDoesNotBlockWithoutClients(t *testing.T) {
	hub := NewHub()

	// No Run loop draining; the queue holds a burst and then drops
	for i := 0; i < 100; i++ {
		hub.Broadcast(Event{Type: EventCollected, ID: uint(i)})
	}
}
