// Package relay adapts one API Gateway chat event into one call against the
// inference service and folds every outcome into a fixed response envelope.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"simplechat"
	"simplechat/inference"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Relay forwards chat messages to the configured inference endpoint.
// Invocations are independent, no state survives between calls.
type Relay struct {
	client *inference.Client
}

// New fixes the endpoint at construction. The configuration is read once at
// process start and never mutated.
func New(cfg simplechat.Config) *Relay {
	return &Relay{
		client: inference.NewClient(cfg.EndpointURL, cfg.Timeout),
	}
}

// Handle never returns a non-nil error: every failure becomes a 500
// envelope so nothing escapes the boundary.
func (r *Relay) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := simplechat.Logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With("requestId", lc.AwsRequestID)
	}
	log.Info("received event", "path", event.Path, "method", event.HTTPMethod, "body", event.Body)

	if user := authenticatedUser(event); user != "" {
		log.Info("authenticated user", "user", user)
	}

	req, err := simplechat.ParseChatRequest([]byte(event.Body))
	if err != nil {
		return failure(log, err), nil
	}
	log.Info("processing message", "message", req.Message)

	payload := &simplechat.InferencePayload{
		Message:             req.Message,
		ConversationHistory: req.ConversationHistory,
	}
	payloadJSON, _ := json.Marshal(payload)
	log.Info("calling inference endpoint", "payload", string(payloadJSON))

	result, err := r.client.Send(ctx, payload)
	if err != nil {
		return failure(log, err), nil
	}
	log.Info("inference response received", "response", result.Response)

	// When the service omits the history the request's history is reused
	// unchanged.
	updated := result.ConversationHistory
	if updated == nil {
		updated = req.ConversationHistory
	}

	return success(simplechat.ChatSuccess{
		Success:             true,
		Response:            result.Response,
		ConversationHistory: updated,
	}), nil
}

// authenticatedUser pulls the Cognito claims out of the authorizer context.
// Claims are optional and used for diagnostics only.
func authenticatedUser(event events.APIGatewayProxyRequest) string {
	claims, ok := event.RequestContext.Authorizer["claims"].(map[string]interface{})
	if !ok {
		return ""
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if name, ok := claims["cognito:username"].(string); ok {
		return name
	}
	return ""
}

func success(body simplechat.ChatSuccess) events.APIGatewayProxyResponse {
	data, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    simplechat.CORSHeaders(),
		Body:       string(data),
	}
}

func failure(log *slog.Logger, err error) events.APIGatewayProxyResponse {
	log.Error("relay failed", "error", err)
	data, _ := json.Marshal(simplechat.ChatFailure{Success: false, Error: err.Error()})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    simplechat.CORSHeaders(),
		Body:       string(data),
	}
}
