package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/auditai/pkg/domain/model"
)

func TestParseTimestamp(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name  string
		input string
		loc   *time.Location
		want  time.Time
	}{
		{"rfc3339 utc", "2024-03-01T10:30:00Z", nil, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"rfc3339 offset", "2024-03-01T10:30:00-03:00", nil, time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)},
		{"form date and time", "2024-03-01 10:30:00", nil, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"python isoformat with micros", "2024-03-01T10:30:00.123456", nil, time.Date(2024, 3, 1, 10, 30, 0, 123456000, time.UTC)},
		{"minutes only", "2024-03-01 10:30", nil, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", "2024-03-01", nil, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"brazilian date", "01/03/2024 10:30", nil, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"naive in location", "2024-03-01 10:30:00", saoPaulo, time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseTimestamp(tt.input, tt.loc)
			gt.NoError(t, err).Required()
			gt.Bool(t, got.Equal(tt.want)).True()
			gt.Value(t, got.Location()).Equal(time.UTC)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2024-13-01", "31/02/2024"} {
		t.Run(input, func(t *testing.T) {
			_, err := model.ParseTimestamp(input, nil)
			gt.Bool(t, errors.Is(err, model.ErrCoercion)).True()
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := model.ParseAmount(" 1500.75 ")
	gt.NoError(t, err).Required()
	gt.Value(t, d.String()).Equal("1500.75")

	for _, input := range []string{"", "abc", "1.500,75", "R$ 10"} {
		_, err := model.ParseAmount(input)
		gt.Bool(t, errors.Is(err, model.ErrCoercion)).True()
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"sim", true},
		{" Sim ", true},
		{"false", false},
		{"0", false},
		{"nao", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.Value(t, model.ParseBool(tt.input)).Equal(tt.want)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := model.ParseID("42")
	gt.NoError(t, err).Required()
	gt.Value(t, id).Equal(int64(42))

	id, err = model.ParseID("42.0")
	gt.NoError(t, err).Required()
	gt.Value(t, id).Equal(int64(42))

	_, err = model.ParseID("4.5")
	gt.Bool(t, errors.Is(err, model.ErrCoercion)).True()

	_, err = model.ParseID("0")
	gt.Bool(t, errors.Is(err, model.ErrDomain)).True()
}
