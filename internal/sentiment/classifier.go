package sentiment

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// placeholderKeys are credential values shipped in sample configs. They are
// treated the same as a missing key.
var placeholderKeys = map[string]bool{
	"demo_key_for_testing": true,
	"your_api_key_here":    true,
}

// HasCredential reports whether key is usable for the gateway.
func HasCredential(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !placeholderKeys[key]
}

// Classifier decides the sentiment of a comment, preferring the gateway when
// a credential is configured and falling back to Keyword otherwise.
type Classifier struct {
	gateway *Gateway
	logger  *zap.Logger
}

// NewClassifier builds a classifier from the gateway configuration.
// Without a usable credential the classifier runs in keyword mode only.
func NewClassifier(cfg GatewayConfig, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Classifier{logger: logger}
	if !HasCredential(cfg.APIKey) {
		logger.Warn("AI gateway key not configured, using keyword sentiment heuristic")
		return c
	}

	gw, err := NewGateway(cfg)
	if err != nil {
		logger.Warn("AI gateway unavailable, using keyword sentiment heuristic", zap.Error(err))
		return c
	}
	c.gateway = gw
	return c
}

// UsesGateway reports whether Classify calls the remote gateway.
func (c *Classifier) UsesGateway() bool {
	return c.gateway != nil
}

// Classify returns the sentiment of comment. A blank comment is Neutral
// without any remote call. Gateway failures are returned as ErrRateLimited,
// ErrPaymentRequired or ErrClassificationFailed; an answer that is not one
// of the three labels resolves to Neutral.
func (c *Classifier) Classify(ctx context.Context, comment string) (Sentiment, error) {
	if strings.TrimSpace(comment) == "" {
		return Neutral, nil
	}

	if c.gateway == nil {
		s := Keyword(comment)
		c.logger.Debug("keyword sentiment", zap.Stringer("sentiment", s))
		return s, nil
	}

	answer, ok, err := c.gateway.Complete(ctx, comment)
	if err != nil {
		c.logger.Error("sentiment gateway call failed", zap.Error(err))
		return Neutral, err
	}
	if !ok {
		c.logger.Warn("unparsable gateway response, defaulting to Neutral")
		return Neutral, nil
	}

	s, valid := Parse(answer)
	if !valid {
		c.logger.Warn("unexpected sentiment label, defaulting to Neutral", zap.String("label", answer))
		return Neutral, nil
	}

	c.logger.Info("sentiment classified", zap.Stringer("sentiment", s))
	return s, nil
}
