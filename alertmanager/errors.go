// Copyright 2026 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package alertmanager

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// BuildTransportError is returned when the HTTP client cannot be built from
// the given configuration. It happens before any request is made, so it has
// no retry verdict: the configuration has to be fixed instead.
type BuildTransportError struct {
	Err error
}

func (e *BuildTransportError) Error() string {
	return fmt.Sprintf("failed to build HTTP client: %s", e.Err)
}

func (e *BuildTransportError) Unwrap() error { return e.Err }

// RequestErrorKind tells what went wrong in the network layer.
type RequestErrorKind int

const (
	// RequestOther covers failures that a retry won't fix, such as an
	// invalid request, a cancelled context or a rejected certificate.
	RequestOther RequestErrorKind = iota
	// RequestConnect means no connection could be established.
	RequestConnect
	// RequestTimeout means the request did not complete in time.
	RequestTimeout
)

func (k RequestErrorKind) String() string {
	switch k {
	case RequestConnect:
		return "connect"
	case RequestTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// RequestError is returned when no response was received from Alertmanager.
type RequestError struct {
	Kind RequestErrorKind
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP request failed: %s", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Retryable reports whether the failure was a connection failure or a
// timeout.
func (e *RequestError) Retryable() bool {
	return e.Kind == RequestConnect || e.Kind == RequestTimeout
}

// SerializeError is returned when the alerts cannot be encoded as JSON.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("failed to serialize alerts: %s", e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// Retryable always returns false, the same alerts would fail again.
func (e *SerializeError) Retryable() bool { return false }

// APIError is returned when Alertmanager answered with a non-2xx status.
type APIError struct {
	StatusCode int
	// Message is the response body, empty if it could not be read.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alertmanager API error: HTTP %d - %s", e.StatusCode, e.Message)
}

// Retryable reports whether the status code is a server error.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

// IsRetryable reports whether err, or an error it wraps, is a push failure
// worth retrying. It is meant for retry layers sitting on top of the
// client; the client itself never retries.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// classifyRequestError decides the kind of a transport failure at the point
// it is observed.
func classifyRequestError(ctx context.Context, err error) RequestErrorKind {
	// A deadline on the caller's context and the client timeout both end up
	// here; a plain cancellation does not.
	if errors.Is(err, context.DeadlineExceeded) {
		return RequestTimeout
	}
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return RequestOther
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return RequestTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return RequestConnect
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return RequestConnect
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return RequestConnect
	}
	return RequestOther
}
