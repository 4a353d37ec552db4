package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeBotMove   MessageType = "botMove"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the payload of a move message, in algebraic squares ("e2", "e4").
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ErrorPayload is the payload of an error message.
type ErrorPayload struct {
	Error string `json:"error"`
}
