package simplechat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingMessage reports an inbound body without the required message
// field.
var ErrMissingMessage = errors.New("request body is missing the message field")

// ChatRequest is the body of an inbound chat event. Conversation turns are
// opaque to the relay and forwarded verbatim.
type ChatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []json.RawMessage `json:"conversationHistory,omitempty"`
}

// InferencePayload is the body POSTed to the inference endpoint.
type InferencePayload struct {
	Message             string            `json:"message"`
	ConversationHistory []json.RawMessage `json:"conversationHistory"`
}

// InferenceResult is a validated successful reply from the inference
// endpoint. ConversationHistory is nil when the service omitted it.
type InferenceResult struct {
	Response            string
	ConversationHistory []json.RawMessage
}

// ChatSuccess is the envelope body for a relayed answer. The history always
// marshals as an array, never null.
type ChatSuccess struct {
	Success             bool              `json:"success"`
	Response            string            `json:"response"`
	ConversationHistory []json.RawMessage `json:"conversationHistory"`
}

// ChatFailure is the envelope body for any failed invocation.
type ChatFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ParseChatRequest decodes and validates an inbound chat body. The message
// field must be present; an absent history becomes an empty sequence.
func ParseChatRequest(data []byte) (*ChatRequest, error) {
	var wire struct {
		Message             *string           `json:"message"`
		ConversationHistory []json.RawMessage `json:"conversationHistory"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse request body: %w", err)
	}
	if wire.Message == nil {
		return nil, ErrMissingMessage
	}
	history := wire.ConversationHistory
	if history == nil {
		history = []json.RawMessage{}
	}
	return &ChatRequest{Message: *wire.Message, ConversationHistory: history}, nil
}

// CORSHeaders returns the fixed header set attached to every envelope.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "OPTIONS,POST",
	}
}
