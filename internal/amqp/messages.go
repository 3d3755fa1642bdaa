package amqp

import (
	"encoding/json"
	"time"
)

// CatalogRefreshMessage asks the worker to re-fetch the card catalog from its
// source. Reason is free text used only for logging.
type CatalogRefreshMessage struct {
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCatalogRefreshMessage(reason string) *CatalogRefreshMessage {
	return &CatalogRefreshMessage{
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *CatalogRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CatalogRefreshMessageFromJSON(data []byte) (*CatalogRefreshMessage, error) {
	var msg CatalogRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CatalogUpdatedMessage announces a completed refresh so other consumers can
// invalidate caches.
type CatalogUpdatedMessage struct {
	Cards     int       `json:"cards"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCatalogUpdatedMessage(cards int) *CatalogUpdatedMessage {
	return &CatalogUpdatedMessage{
		Cards:     cards,
		Timestamp: time.Now(),
	}
}

func (m *CatalogUpdatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CatalogUpdatedMessageFromJSON(data []byte) (*CatalogUpdatedMessage, error) {
	var msg CatalogUpdatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
