package socket

import (
	"encoding/json"
)

// Event is the wire envelope for every frame in both directions.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewEvent(eventType string, data any) (*Event, error) {
	if data == nil {
		return &Event{Type: eventType}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{Type: eventType, Data: raw}, nil
}
