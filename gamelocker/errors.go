package gamelocker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	// KindInvalidArgument means caller-supplied parameters failed local
	// validation; no request was sent.
	KindInvalidArgument ErrorKind = iota + 1
	// KindUnauthorized covers 401 and 403 responses.
	KindUnauthorized
	// KindNotFound covers 404 responses and lookups with empty result sets.
	KindNotFound
	// KindMalformedRequest covers 400 and 422 responses.
	KindMalformedRequest
	// KindRateLimited covers 429 responses.
	KindRateLimited
	// KindServerError covers 5xx responses.
	KindServerError
	// KindNetworkError means the transport failed before any status code
	// was received.
	KindNetworkError
	// KindDecodeError means a successful response carried a body that could
	// not be decoded into the expected shape.
	KindDecodeError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindMalformedRequest:
		return "malformed request"
	case KindRateLimited:
		return "rate limited"
	case KindServerError:
		return "server error"
	case KindNetworkError:
		return "network error"
	case KindDecodeError:
		return "decode error"
	default:
		return "unknown"
	}
}

// APIError is the error type returned for every failure in the
// request/response pipeline.
type APIError struct {
	Kind       ErrorKind
	StatusCode int           // 0 when no HTTP response was received
	Message    string        // detail from the API error body, if any
	RetryAfter time.Duration // only set for rate-limited errors
	err        error         // wrapped transport or decode cause
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("gamelocker: %s", e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

// Unwrap exposes the underlying transport or decode failure.
func (e *APIError) Unwrap() error {
	return e.err
}

// IsNotFound reports whether the error is a not-found response.
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsUnauthorized reports whether the error is an authentication failure.
func (e *APIError) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// IsRateLimited reports whether the error is a rate limit rejection. The
// RetryAfter field carries the provider's hint when one was sent; the
// client never retries on its own.
func (e *APIError) IsRateLimited() bool {
	return e.Kind == KindRateLimited
}

func invalidArgument(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func decodeError(cause error) *APIError {
	return &APIError{Kind: KindDecodeError, err: cause}
}

func networkError(cause error) *APIError {
	return &APIError{Kind: KindNetworkError, err: cause}
}

// classify maps a received HTTP response onto the error taxonomy. It returns
// nil for 2xx responses. The body is consulted only to extract the optional
// error detail; it is never parsed as a domain payload here.
func classify(resp *http.Response, body []byte) *APIError {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: code,
		Message:    errorDetail(body),
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		apiErr.Kind = KindUnauthorized
	case code == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		apiErr.Kind = KindMalformedRequest
	case code == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimited
		apiErr.RetryAfter = retryAfter(resp.Header)
	case code >= 500:
		apiErr.Kind = KindServerError
	default:
		apiErr.Kind = KindMalformedRequest
	}

	return apiErr
}

// errorDetail pulls the first error title/detail out of a JSON:API error
// body. A body that is not valid JSON yields an empty message.
func errorDetail(body []byte) string {
	var doc struct {
		Errors []struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &doc); err != nil || len(doc.Errors) == 0 {
		return ""
	}
	if doc.Errors[0].Detail != "" {
		return doc.Errors[0].Detail
	}
	return doc.Errors[0].Title
}

// retryAfter parses the Retry-After header, which may be delay seconds or an
// HTTP date.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
