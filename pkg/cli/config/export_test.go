package config

import "time"

// NewIngestForTest creates an Ingest config for testing purposes
func NewIngestForTest(submitRate float64, timezone string) *Ingest {
	return &Ingest{submitRate: submitRate, timezone: timezone}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func (x *API) BaseURLForTest() string { return x.baseURL }
func (x *API) TimeoutForTest() time.Duration { return x.timeout }
func (x *Ingest) TimezoneForTest() string { return x.timezone }
func (x *Ingest) SubmitRateForTest() float64 { return x.submitRate }
