package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHasCredential(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"demo_key_for_testing", false},
		{"your_api_key_here", false},
		{"sk-live-123", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCredential(tt.key))
		})
	}
}

func TestClassifierKeywordFallback(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	for _, key := range []string{"", "demo_key_for_testing"} {
		t.Run("key="+key, func(t *testing.T) {
			c := NewClassifier(GatewayConfig{URL: server.URL, APIKey: key}, zap.NewNop())
			assert.False(t, c.UsesGateway())

			got, err := c.Classify(context.Background(), "This was an excellent class")
			require.NoError(t, err)
			assert.Equal(t, Positive, got)

			got, err = c.Classify(context.Background(), "This was the worst experience")
			require.NoError(t, err)
			assert.Equal(t, Negative, got)

			got, err = c.Classify(context.Background(), "It was fine")
			require.NoError(t, err)
			assert.Equal(t, Neutral, got)
		})
	}

	assert.Zero(t, atomic.LoadInt32(&calls), "keyword mode must not call the gateway")
}

func TestClassifierWarnsWithoutCredential(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	NewClassifier(GatewayConfig{}, zap.New(core))

	assert.Equal(t, 1, logs.FilterMessageSnippet("keyword sentiment heuristic").Len())
}

func TestClassifierBlankCommentSkipsGateway(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeCompletion(t, w, "Positive")
	}))
	defer server.Close()

	c := NewClassifier(GatewayConfig{URL: server.URL, APIKey: "sk-test"}, zap.NewNop())
	require.True(t, c.UsesGateway())

	for _, comment := range []string{"", "   ", "\n\t"} {
		got, err := c.Classify(context.Background(), comment)
		require.NoError(t, err)
		assert.Equal(t, Neutral, got)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClassifierGateway(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   Sentiment
	}{
		{"positive", "Positive", Positive},
		{"negative", "Negative", Negative},
		{"neutral", "Neutral", Neutral},
		{"lowercase label", "positive", Neutral},
		{"sentence", "The sentiment is Positive.", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeCompletion(t, w, tt.answer)
			}))
			defer server.Close()

			c := NewClassifier(GatewayConfig{URL: server.URL, APIKey: "sk-test"}, zap.NewNop())
			got, err := c.Classify(context.Background(), "Some comment")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifierUnexpectedLabelWarns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, "Mixed")
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := NewClassifier(GatewayConfig{URL: server.URL, APIKey: "sk-test"}, zap.New(core))

	got, err := c.Classify(context.Background(), "Some comment")
	require.NoError(t, err)
	assert.Equal(t, Neutral, got)
	assert.Equal(t, 1, logs.FilterMessageSnippet("unexpected sentiment label").Len())
}

func TestClassifierPropagatesGatewayErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"payment required", http.StatusPaymentRequired, ErrPaymentRequired},
		{"upstream failure", http.StatusBadGateway, ErrClassificationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			c := NewClassifier(GatewayConfig{URL: server.URL, APIKey: "sk-test"}, zap.NewNop())
			_, err := c.Classify(context.Background(), "Some comment")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
