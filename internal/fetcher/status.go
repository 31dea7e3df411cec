// Package fetcher performs single-attempt polite fetches: robots policy,
// global rate limiting, transport, and content-based failure classification.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Status classifies the outcome of a fetch attempt. The values are persisted
// verbatim in the archive manifest.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSuccess    Status = "SUCCESS"
	StatusHTTPError  Status = "HTTP_ERROR"
	StatusTimeout    Status = "TIMEOUT"
	StatusDNSFailure Status = "DNS_FAILURE"
	StatusWAFBlocked Status = "WAF_BLOCKED"
	StatusJSOnly     Status = "JS_ONLY"
)

// FetchError is the tagged failure variant for one fetch attempt. Exactly
// one Status applies per attempt; Reason is human-readable context and
// HTTPStatus is zero unless a response was received.
type FetchError struct {
	Status     Status
	Reason     string
	HTTPStatus int
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s (http %d): %s", e.Status, e.HTTPStatus, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Reason)
}

// AsFetchError extracts the classification from err, wrapping unclassified
// errors as a generic HTTP_ERROR.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{
		Status: StatusHTTPError,
		Reason: truncateReason("Unexpected error: " + err.Error()),
	}
}

// resolution-related markers seen in transport error text across platforms.
var dnsMarkers = []string{
	"no such host",
	"name resolution",
	"server misbehaving",
	"dns",
}

// classifyTransportError maps a transport fault onto the failure taxonomy:
// name-resolution faults, then deadline faults, then generic HTTP_ERROR.
func classifyTransportError(err error, timeoutSeconds int) *FetchError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || containsAnyFold(err.Error(), dnsMarkers) {
		return &FetchError{
			Status: StatusDNSFailure,
			Reason: truncateReason("DNS resolution failed: " + err.Error()),
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Status: StatusTimeout,
			Reason: fmt.Sprintf("Request timed out after %ds", timeoutSeconds),
		}
	}

	return &FetchError{
		Status: StatusHTTPError,
		Reason: truncateReason("Connection error: " + err.Error()),
	}
}

func containsAnyFold(s string, markers []string) bool {
	lower := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// truncateReason keeps manifest failure reasons bounded.
func truncateReason(reason string) string {
	const maxLen = 220
	if len(reason) > maxLen {
		return reason[:maxLen]
	}
	return reason
}
