package relay_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"simplechat"
	"simplechat/relay"

	"github.com/aws/aws-lambda-go/events"
	"gotest.tools/v3/assert"
)

func newRelay(endpoint string) *relay.Relay {
	return relay.New(simplechat.Config{EndpointURL: endpoint, Timeout: 5 * time.Second})
}

func jsonRemote(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, reply)
	}))
}

func chatEvent(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Path:       "/chat",
		HTTPMethod: "POST",
		Body:       body,
	}
}

func decodeFailure(t *testing.T, resp events.APIGatewayProxyResponse) simplechat.ChatFailure {
	t.Helper()
	var failed simplechat.ChatFailure
	assert.NilError(t, json.Unmarshal([]byte(resp.Body), &failed))
	assert.Equal(t, failed.Success, false)
	return failed
}

func TestHandleSuccess(t *testing.T) {
	remote := jsonRemote(t, `{"success":true,"response":"hello","conversationHistory":[]}`)
	defer remote.Close()

	resp, err := newRelay(remote.URL).Handle(context.Background(), chatEvent(`{"message":"hi","conversationHistory":[]}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, resp.Body, `{"success":true,"response":"hello","conversationHistory":[]}`)
}

func TestHandleAuthorizerClaims(t *testing.T) {
	remote := jsonRemote(t, `{"success":true,"response":"hello","conversationHistory":[]}`)
	defer remote.Close()

	event := chatEvent(`{"message":"hi"}`)
	event.RequestContext = events.APIGatewayProxyRequestContext{
		Authorizer: map[string]interface{}{
			"claims": map[string]interface{}{
				"email":            "user@example.com",
				"cognito:username": "user",
			},
		},
	}

	resp, err := newRelay(remote.URL).Handle(context.Background(), event)
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusOK)
}

func TestHandleInvalidBody(t *testing.T) {
	resp, err := newRelay("http://127.0.0.1:1").Handle(context.Background(), chatEvent(`not json`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	failed := decodeFailure(t, resp)
	assert.Assert(t, failed.Error != "")
}

func TestHandleMissingMessage(t *testing.T) {
	resp, err := newRelay("http://127.0.0.1:1").Handle(context.Background(), chatEvent(`{"conversationHistory":[]}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	failed := decodeFailure(t, resp)
	assert.Assert(t, strings.Contains(failed.Error, "message"))
}

func TestHandleRemoteStatusError(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer remote.Close()

	resp, err := newRelay(remote.URL).Handle(context.Background(), chatEvent(`{"message":"hi"}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	failed := decodeFailure(t, resp)
	assert.Assert(t, strings.Contains(failed.Error, "503"))
}

func TestHandleRemoteWrongContentType(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "tunnel expired")
	}))
	defer remote.Close()

	resp, err := newRelay(remote.URL).Handle(context.Background(), chatEvent(`{"message":"hi"}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	failed := decodeFailure(t, resp)
	assert.Assert(t, strings.Contains(failed.Error, "tunnel expired"))
}

func TestHandleRemoteSemanticError(t *testing.T) {
	remote := jsonRemote(t, `{"success":false}`)
	defer remote.Close()

	resp, err := newRelay(remote.URL).Handle(context.Background(), chatEvent(`{"message":"hi"}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	failed := decodeFailure(t, resp)
	assert.Assert(t, strings.Contains(failed.Error, "invalid response"))
}

func TestHandleNetworkError(t *testing.T) {
	resp, err := newRelay("http://127.0.0.1:1").Handle(context.Background(), chatEvent(`{"message":"hi"}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	failed := decodeFailure(t, resp)
	assert.Assert(t, failed.Error != "")
}

func TestHandleHistoryFallback(t *testing.T) {
	remote := jsonRemote(t, `{"success":true,"response":"hello"}`)
	defer remote.Close()

	resp, err := newRelay(remote.URL).Handle(context.Background(),
		chatEvent(`{"message":"hi","conversationHistory":[{"role":"user","content":"earlier"}]}`))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusOK)

	var answer simplechat.ChatSuccess
	assert.NilError(t, json.Unmarshal([]byte(resp.Body), &answer))
	assert.Equal(t, len(answer.ConversationHistory), 1)
	assert.Equal(t, string(answer.ConversationHistory[0]), `{"role":"user","content":"earlier"}`)
}

func TestHandleIdempotent(t *testing.T) {
	remote := jsonRemote(t, `{"success":true,"response":"hello","conversationHistory":[]}`)
	defer remote.Close()

	r := newRelay(remote.URL)
	event := chatEvent(`{"message":"hi","conversationHistory":[]}`)
	first, err := r.Handle(context.Background(), event)
	assert.NilError(t, err)
	second, err := r.Handle(context.Background(), event)
	assert.NilError(t, err)
	assert.DeepEqual(t, first, second)
}

func TestHandleEnvelopesCarryCORSHeaders(t *testing.T) {
	remote := jsonRemote(t, `{"success":true,"response":"hello","conversationHistory":[]}`)
	defer remote.Close()

	r := newRelay(remote.URL)
	ok, _ := r.Handle(context.Background(), chatEvent(`{"message":"hi"}`))
	failed, _ := r.Handle(context.Background(), chatEvent(`not json`))

	for _, resp := range []events.APIGatewayProxyResponse{ok, failed} {
		assert.Equal(t, resp.Headers["Content-Type"], "application/json")
		assert.Equal(t, resp.Headers["Access-Control-Allow-Origin"], "*")
		assert.Equal(t, resp.Headers["Access-Control-Allow-Headers"], "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token")
		assert.Equal(t, resp.Headers["Access-Control-Allow-Methods"], "OPTIONS,POST")
	}
}
