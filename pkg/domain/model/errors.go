package model

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Error taxonomy shared by the API client, the retrieval cache and the
// ingestion pipeline. Callers match with errors.Is.
var (
	// ErrTransport means the audit API could not be reached (connection, timeout).
	ErrTransport = goerr.New("transport error")
	// ErrAPI means the audit API answered with a non-2xx status.
	ErrAPI = goerr.New("api error")
	// ErrSchemaMismatch means an uploaded table lacks required columns.
	ErrSchemaMismatch = goerr.New("schema mismatch")
	// ErrCoercion means a raw value could not be parsed into its target type.
	ErrCoercion = goerr.New("coercion error")
	// ErrDomain means a value is outside a recognized enumeration or range.
	ErrDomain = goerr.New("domain error")
)

// Context keys for error values
const (
	EndpointKey       = "endpoint"
	StatusKey         = "status"
	DetailKey         = "detail"
	ColumnKey         = "column"
	ValueKey          = "value"
	MissingColumnsKey = "missing_columns"
	CauseKey          = "cause"
	LineKey           = "line"
	RiskIDKey         = "risk_id"
)

// Error kind names as reported to users
const (
	KindTransport      = "TransportError"
	KindAPI            = "ApiError"
	KindSchemaMismatch = "SchemaMismatch"
	KindCoercion       = "CoercionError"
	KindDomain         = "DomainError"
	KindUnknown        = "Error"
)

// KindOf names the taxonomy member err belongs to.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrAPI):
		return KindAPI
	case errors.Is(err, ErrSchemaMismatch):
		return KindSchemaMismatch
	case errors.Is(err, ErrCoercion):
		return KindCoercion
	case errors.Is(err, ErrDomain):
		return KindDomain
	default:
		return KindUnknown
	}
}

// ValueOf looks up a goerr value by key anywhere in err's chain, outermost first.
func ValueOf(err error, key string) (any, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		var ge *goerr.Error
		if !errors.As(e, &ge) {
			return nil, false
		}
		if v, ok := ge.Values()[key]; ok {
			return v, true
		}
		e = ge
	}
	return nil, false
}

// DetailOf returns the verbatim detail the audit API sent with an error
// response, or an empty string.
func DetailOf(err error) string {
	v, ok := ValueOf(err, DetailKey)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// StatusOf returns the HTTP status the audit API answered with, or 0.
func StatusOf(err error) int {
	v, ok := ValueOf(err, StatusKey)
	if !ok {
		return 0
	}
	status, _ := v.(int)
	return status
}
