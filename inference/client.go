// Package inference holds the HTTP client for the remote inference service.
// The service is an external collaborator, only its wire contract is known
// here.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"simplechat"
)

// Client performs the single POST to the inference endpoint. It keeps no
// state between calls.
type Client struct {
	endpoint string
	httpc    *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// Send posts the payload and validates the reply. One attempt, no retries;
// the client timeout bounds the whole call.
func (c *Client) Send(ctx context.Context, payload *simplechat.InferencePayload) (*simplechat.InferenceResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal inference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call inference endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return nil, &ContentTypeError{ContentType: mediaType, Body: string(body)}
	}

	// response is a pointer so a present-but-empty reply is distinguishable
	// from an absent field.
	var reply struct {
		Success             bool              `json:"success"`
		Response            *string           `json:"response"`
		ConversationHistory []json.RawMessage `json:"conversationHistory"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if !reply.Success || reply.Response == nil {
		return nil, ErrInvalidResponse
	}

	return &simplechat.InferenceResult{
		Response:            *reply.Response,
		ConversationHistory: reply.ConversationHistory,
	}, nil
}
