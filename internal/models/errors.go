package models

import "fmt"

// FetchError reports a failure retrieving the listing document.
type FetchError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a listing document that is not well-formed XML or
// carries a non-integer size.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse listing: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DataShapeError reports a listing that parsed but cannot produce a summary.
type DataShapeError struct {
	Reason string
}

func (e *DataShapeError) Error() string {
	return "invalid listing: " + e.Reason
}
