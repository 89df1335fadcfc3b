package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
)

// Layouts carrying their own offset
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
}

// Naive layouts, interpreted in the caller's location. Fractional seconds
// are accepted after the seconds field without being spelled out.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseTimestamp normalizes a date or date-time string to an absolute instant
// in UTC. Values without an offset are interpreted in loc (UTC when nil).
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, goerr.Wrap(ErrCoercion, "timestamp is empty")
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, goerr.Wrap(ErrCoercion, "unrecognized timestamp format", goerr.V(ValueKey, raw))
}

// ParseAmount parses a decimal amount. Sign is not checked here.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, goerr.Wrap(ErrCoercion, "amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, goerr.Wrap(ErrCoercion, "amount is not a number",
			goerr.V(ValueKey, raw), goerr.V(CauseKey, err.Error()))
	}
	return d, nil
}

// ParseBool reads "true", "1" and "sim" (any case) as true and everything
// else, including empty, as false.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "sim":
		return true
	default:
		return false
	}
}

// ParseID parses a positive integer identifier
func ParseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Identifiers exported through float columns come back as "12.0"
		d, derr := decimal.NewFromString(s)
		if derr != nil || !d.IsInteger() {
			return 0, goerr.Wrap(ErrCoercion, "identifier is not an integer", goerr.V(ValueKey, raw))
		}
		id = d.IntPart()
	}
	if id <= 0 {
		return 0, goerr.Wrap(ErrDomain, "identifier must be positive", goerr.V(ValueKey, raw))
	}
	return id, nil
}
