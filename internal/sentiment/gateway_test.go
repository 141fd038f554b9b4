package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGateway(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sk-test", false},
		{"empty key", "", true},
		{"blank key", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGateway(GatewayConfig{APIKey: tt.key})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultGatewayURL, g.url)
			assert.Equal(t, DefaultModel, g.model)
			assert.Equal(t, DefaultTimeout, g.httpClient.Timeout)
		})
	}
}

func TestGatewayRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		assert.InDelta(t, 0.3, body.Temperature, 1e-9)
		assert.Equal(t, 10, body.MaxTokens)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Contains(t, body.Messages[1].Content, `"Great teacher"`)

		writeCompletion(t, w, "Positive")
	}))
	defer server.Close()

	g := testGateway(t, server.URL)

	answer, ok, err := g.Complete(context.Background(), "Great teacher")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Positive", answer)
}

func TestGatewayStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"payment required", http.StatusPaymentRequired, ErrPaymentRequired},
		{"server error", http.StatusInternalServerError, ErrClassificationFailed},
		{"bad request", http.StatusBadRequest, ErrClassificationFailed},
		{"unauthorized", http.StatusUnauthorized, ErrClassificationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				writeResponse(t, w, `{"error":"nope"}`)
			}))
			defer server.Close()

			_, _, err := testGateway(t, server.URL).Complete(context.Background(), "anything")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGatewayMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", `not json`},
		{"no choices", `{"choices": []}`},
		{"wrong shape", `{"result": "Positive"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeResponse(t, w, tt.response)
			}))
			defer server.Close()

			answer, ok, err := testGateway(t, server.URL).Complete(context.Background(), "anything")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, answer)
		})
	}
}

func TestGatewayTrimsAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, "  Negative\n")
	}))
	defer server.Close()

	answer, ok, err := testGateway(t, server.URL).Complete(context.Background(), "meh")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Negative", answer)
}

func TestGatewayTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, err := testGateway(t, url).Complete(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrClassificationFailed)
}

func TestGatewayTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	g, err := NewGateway(GatewayConfig{URL: server.URL, APIKey: "sk-test", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, _, err = g.Complete(context.Background(), "slow")
	assert.ErrorIs(t, err, ErrClassificationFailed)
}

func testGateway(t *testing.T, url string) *Gateway {
	t.Helper()
	g, err := NewGateway(GatewayConfig{
		URL:         url,
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   10,
		APIKey:      "sk-test",
	})
	require.NoError(t, err)
	return g
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode completion: %v", err)
	}
}

func writeResponse(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	if _, err := w.Write([]byte(strings.TrimSpace(body))); err != nil {
		t.Errorf("write response: %v", err)
	}
}
