package sentiment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		s    Sentiment
		want string
	}{
		{Positive, "Positive"},
		{Negative, "Negative"},
		{Neutral, "Neutral"},
		{Sentiment(42), "Sentiment(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestZeroValueIsNeutral(t *testing.T) {
	var s Sentiment
	assert.Equal(t, Neutral, s)
	assert.Equal(t, "Neutral", s.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		label  string
		want   Sentiment
		wantOK bool
	}{
		{"Positive", Positive, true},
		{"Negative", Negative, true},
		{"Neutral", Neutral, true},
		{"positive", Neutral, false},
		{"NEGATIVE", Neutral, false},
		{" Positive", Neutral, false},
		{"Mixed", Neutral, false},
		{"", Neutral, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := Parse(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Sentiment Sentiment `json:"sentiment"`
	}{Negative})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sentiment":"Negative"}`, string(data))

	var decoded struct {
		Sentiment Sentiment `json:"sentiment"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"sentiment":"Positive"}`), &decoded))
	assert.Equal(t, Positive, decoded.Sentiment)

	assert.Error(t, json.Unmarshal([]byte(`{"sentiment":"POSITIVE"}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"sentiment":1}`), &decoded))

	_, err = json.Marshal(Sentiment(9))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	var s Sentiment

	require.NoError(t, s.Scan("Positive"))
	assert.Equal(t, Positive, s)

	require.NoError(t, s.Scan([]byte("Negative")))
	assert.Equal(t, Negative, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, Neutral, s)

	assert.Error(t, s.Scan("happy"))
	assert.Error(t, s.Scan(12))

	v, err := Positive.Value()
	require.NoError(t, err)
	assert.Equal(t, "Positive", v)
}
