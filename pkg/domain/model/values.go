package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
)

// Amount is a monetary value. It is encoded as a bare JSON number because the
// audit API expects a float, and decodes from either a number or a string.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON encodes the amount as a JSON number
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Timestamp is an absolute instant. It is encoded as RFC 3339 in UTC and
// decodes from any layout ParseTimestamp accepts; naive values are read as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// String formats the instant as RFC 3339 in UTC, or "" when zero
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// MarshalJSON encodes the timestamp as an RFC 3339 string or null when zero
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts null, an RFC 3339 string or a naive date/time string
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "timestamp must be a string", goerr.V(ValueKey, string(data)))
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := ParseTimestamp(raw, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
