package pipeline

import (
	"net/http"
	"time"
)

// FetchOutcome is the result of one completed probe. Exactly one of
// StatusCode and Err is meaningful: a transport failure leaves StatusCode
// at zero, a received response leaves Err nil.
type FetchOutcome struct {
	Candidate  Candidate
	StatusCode int
	// Header is carried for external collaborators; the pipeline itself
	// never reads it.
	Header   http.Header
	Err      error
	Duration time.Duration
}

// Classification is the action the process stage takes for an outcome.
type Classification int

const (
	ClassValid Classification = iota
	ClassNotFound
	ClassRateLimited
	ClassUnexpectedStatus
	ClassTransportError
)

var classToString = map[Classification]string{
	ClassValid:            "valid",
	ClassNotFound:         "not_found",
	ClassRateLimited:      "rate_limited",
	ClassUnexpectedStatus: "unexpected_status",
	ClassTransportError:   "transport_error",
}

func (c Classification) String() string {
	if s, ok := classToString[c]; ok {
		return s
	}
	return "unknown"
}

// Classify maps a probe outcome to its classification. Pure function of
// the status code and error presence.
func Classify(o FetchOutcome) Classification {
	switch {
	case o.Err != nil:
		return ClassTransportError
	case o.StatusCode == http.StatusOK:
		return ClassValid
	case o.StatusCode == http.StatusNotFound:
		return ClassNotFound
	case o.StatusCode == http.StatusTooManyRequests:
		return ClassRateLimited
	default:
		return ClassUnexpectedStatus
	}
}
