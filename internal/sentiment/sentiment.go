// Package sentiment classifies feedback comments as Positive, Negative or Neutral,
// either through a chat-completion gateway or a keyword heuristic.
package sentiment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Sentiment is the emotional valence of a comment. The zero value is Neutral.
type Sentiment int

const (
	Neutral Sentiment = iota
	Positive
	Negative
)

// String returns the label used in JSON, the database and gateway prompts.
func (s Sentiment) String() string {
	switch s {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	}
	return fmt.Sprintf("Sentiment(%d)", int(s))
}

// Valid reports whether s is one of the three labels.
func (s Sentiment) Valid() bool {
	return s == Positive || s == Negative || s == Neutral
}

// Parse matches label case-sensitively against the three labels.
func Parse(label string) (Sentiment, bool) {
	switch label {
	case "Positive":
		return Positive, true
	case "Negative":
		return Negative, true
	case "Neutral":
		return Neutral, true
	}
	return Neutral, false
}

// MarshalJSON implements json.Marshaler.
func (s Sentiment) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sentiment %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("sentiment must be a string: %w", err)
	}
	parsed, ok := Parse(label)
	if !ok {
		return fmt.Errorf("invalid sentiment %q", label)
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s Sentiment) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sentiment %d", int(s))
	}
	return s.String(), nil
}

// Scan implements sql.Scanner.
func (s *Sentiment) Scan(src interface{}) error {
	var label string
	switch v := src.(type) {
	case string:
		label = v
	case []byte:
		label = string(v)
	case nil:
		*s = Neutral
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Sentiment", src)
	}

	parsed, ok := Parse(label)
	if !ok {
		return fmt.Errorf("invalid stored sentiment %q", label)
	}
	*s = parsed
	return nil
}
