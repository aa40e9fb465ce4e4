package purchase

import "strings"

type FailureKind string

const (
	FailureUserCancelled FailureKind = "user_cancelled"
	FailureNetwork       FailureKind = "network_error"
	FailureUnknown       FailureKind = "unknown"
)

const ReasonCancelled = "cancelled"

// PlatformError is a purchase error event as reported by the store.
type PlatformError struct {
	Code         string
	ResponseCode int
	Message      string
	ProductID    string
}

type Failure struct {
	Kind      FailureKind
	Reason    string
	Message   string
	Retryable bool
}

// Billing client response codes.
const (
	responseServiceUnavailable = 2
	responseUserCanceled       = 1
	responseNetworkError       = 12
	responseServiceTimeout     = -3
)

func Translate(e PlatformError) Failure {
	code := strings.ToUpper(strings.TrimSpace(e.Code))

	switch {
	case code == "E_USER_CANCELLED" || code == "USER_CANCELED" || code == "USER_CANCELLED" ||
		code == "SKERRORPAYMENTCANCELLED" || e.ResponseCode == responseUserCanceled:
		return Failure{
			Kind:    FailureUserCancelled,
			Reason:  ReasonCancelled,
			Message: "Purchase was cancelled",
		}
	case code == "E_NETWORK_ERROR" || code == "E_SERVICE_ERROR" || code == "NETWORK_ERROR" ||
		code == "SERVICE_UNAVAILABLE" || code == "SERVICE_TIMEOUT" ||
		e.ResponseCode == responseNetworkError || e.ResponseCode == responseServiceUnavailable ||
		e.ResponseCode == responseServiceTimeout:
		return Failure{
			Kind:      FailureNetwork,
			Reason:    "network",
			Message:   "Network error, please try again",
			Retryable: true,
		}
	}

	msg := e.Message
	if msg == "" {
		msg = "Purchase failed"
	}
	return Failure{
		Kind:    FailureUnknown,
		Reason:  "failed",
		Message: msg,
	}
}
