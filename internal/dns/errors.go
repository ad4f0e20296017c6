package dns

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMarkerNotFound is returned when scutil output lacks the scoped
	// queries section.
	ErrMarkerNotFound = errors.New("dns: scoped DNS configuration not found in scutil output")

	// ErrUnknownProvider is returned when a provider id is not in the table.
	ErrUnknownProvider = errors.New("dns: unknown provider")

	// ErrNoNetworkService is returned when no enabled network service exists.
	ErrNoNetworkService = errors.New("dns: no primary network service found")
)

// QueryError reports a failure to read the active DNS servers.
type QueryError struct {
	// Detail carries the tool's stderr text, if any.
	Detail string
	Err    error
}

func (e *QueryError) Error() string {
	msg := "failed to query DNS"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if d := strings.TrimSpace(e.Detail); d != "" {
		msg += ": " + d
	}
	return msg
}

func (e *QueryError) Unwrap() error { return e.Err }

// ApplyError reports a failure to set DNS servers.
type ApplyError struct {
	Servers ServerList
	Detail  string
	Err     error
}

func (e *ApplyError) Error() string {
	target := "Empty"
	if len(e.Servers) > 0 {
		target = strings.Join(e.Servers, " ")
	}
	msg := fmt.Sprintf("failed to set DNS to %s", target)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if d := strings.TrimSpace(e.Detail); d != "" {
		msg += ": " + d
	}
	return msg
}

func (e *ApplyError) Unwrap() error { return e.Err }
