package models

import (
	"encoding/json"
	"time"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeInsights MessageType = "insights"
	MessageTypeError    MessageType = "error"
)

// Message is the envelope for all WebSocket communications
type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the given type and payload
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadJSON,
		Timestamp: time.Now(),
	}, nil
}

// SnapshotMessage is the payload for MessageTypeSnapshot
type SnapshotMessage struct {
	Snapshots   []ZoneSnapshot `json:"snapshots"`
	Source      string         `json:"source"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ErrorMessage is the payload for MessageTypeError
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UnmarshalPayload unmarshals the message payload into the provided struct
func (m *Message) UnmarshalPayload(v interface{}) error {
	err := json.Unmarshal(m.Payload, v)
	if err != nil {
		return err
	}
	return nil
}
