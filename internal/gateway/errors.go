package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

var (
	// ErrEmptyQuery is returned when a lookup is attempted with blank input.
	// Callers treat it as a no-op rather than a user-facing failure.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNoCredential is returned by a CredentialSource with no key available.
	ErrNoCredential = errors.New("no API key configured")
)

// FailureKind classifies a LookupFailure.
type FailureKind string

const (
	// KindNetwork means the service could not be reached. Retrying is safe.
	KindNetwork FailureKind = "network"

	// KindServiceRejection means the service was reached but declined the request.
	KindServiceRejection FailureKind = "service_rejection"

	// KindParse means the service answered with a payload of the wrong shape.
	KindParse FailureKind = "parse"
)

// LookupFailure is the only error type the gateway returns for service calls.
type LookupFailure struct {
	Kind         FailureKind
	Message      string // English, user-visible
	LocalMessage string // Arabic, user-visible
	// Retryable is true when repeating the same request may succeed.
	Retryable bool
	// ReselectCredentials is true when the caller should offer to pick a
	// different API key instead of a bare retry.
	ReselectCredentials bool
	StatusCode          int
	Err                 error
}

func (f *LookupFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *LookupFailure) Unwrap() error { return f.Err }

// AsFailure extracts a *LookupFailure from err.
func AsFailure(err error) (*LookupFailure, bool) {
	var f *LookupFailure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err is a LookupFailure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == kind
}

// NetworkFailure wraps a transport-level error.
func NetworkFailure(err error) *LookupFailure {
	return &LookupFailure{
		Kind:         KindNetwork,
		Message:      "could not reach the AI service; check your connection and try again",
		LocalMessage: "فشل الوصول للموسوعة العالمية. يرجى التأكد من اتصال الإنترنت.",
		Retryable:    true,
		Err:          err,
	}
}

// ParseFailure wraps a payload that did not match the expected shape.
func ParseFailure(err error) *LookupFailure {
	return &LookupFailure{
		Kind:         KindParse,
		Message:      "the AI service returned an unexpected response",
		LocalMessage: "حدث خطأ غير متوقع في الخادم.",
		Err:          err,
	}
}

// CredentialFailure is a rejection caused by a missing or unauthorized key.
func CredentialFailure(status int, err error) *LookupFailure {
	return &LookupFailure{
		Kind:                KindServiceRejection,
		Message:             "the selected API key cannot access this model; select a key from a project with billing enabled",
		LocalMessage:        "يبدو أن مفتاح الـ API المختار لا يملك صلاحية الوصول لهذا النموذج المتقدم. يرجى اختيار مفتاح من مشروع مفعل به الفوترة.",
		ReselectCredentials: true,
		StatusCode:          status,
		Err:                 err,
	}
}

// RejectionFromStatus classifies an HTTP status returned by the AI service.
// Credential statuses only request reselection when credentials apply.
func RejectionFromStatus(status int, usesCredentials bool, err error) *LookupFailure {
	switch {
	case usesCredentials && (status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusNotFound):
		return CredentialFailure(status, err)
	case status == http.StatusTooManyRequests:
		return &LookupFailure{
			Kind:         KindServiceRejection,
			Message:      "the AI service quota is exhausted; wait a moment and try again",
			LocalMessage: "تم تجاوز حد الاستخدام. يرجى المحاولة بعد قليل.",
			Retryable:    true,
			StatusCode:   status,
			Err:          err,
		}
	case status >= http.StatusInternalServerError:
		return &LookupFailure{
			Kind:         KindServiceRejection,
			Message:      "the AI service is temporarily unavailable; try again",
			LocalMessage: "الخدمة غير متاحة مؤقتاً. يرجى المحاولة مرة أخرى.",
			Retryable:    true,
			StatusCode:   status,
			Err:          err,
		}
	default:
		return &LookupFailure{
			Kind:         KindServiceRejection,
			Message:      "the AI service rejected the request",
			LocalMessage: "رفضت خدمة الذكاء الاصطناعي الطلب.",
			StatusCode:   status,
			Err:          err,
		}
	}
}

// isTransportError reports whether err comes from the network layer rather
// than from the service itself.
func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// classifyUnknown turns an error a backend did not classify into a failure.
func classifyUnknown(err error) *LookupFailure {
	if f, ok := AsFailure(err); ok {
		return f
	}
	if errors.Is(err, ErrNoCredential) {
		return CredentialFailure(0, err)
	}
	if isTransportError(err) {
		return NetworkFailure(err)
	}
	return RejectionFromStatus(0, false, err)
}
