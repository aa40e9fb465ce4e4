// Package codec turns the platform-specific purchase payloads of both stores into
// the canonical purchase types. Field names differ between platforms and library
// versions, so every field is read through an ordered list of aliases.
package codec

import (
	"strconv"
	"strings"
	"time"

	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/pkg/errs"

	"github.com/tidwall/gjson"
)

var (
	ErrMalformedPayload = errs.New("malformed platform payload")
	ErrMissingToken     = errs.New("purchase payload has no token")
	ErrUnknownEventType = errs.New("unknown platform event type")
)

type EventType string

const (
	EventPurchaseUpdated EventType = "purchase_updated"
	EventPurchaseError   EventType = "purchase_error"
)

type Event struct {
	Type    EventType
	Outcome *purchase.Outcome
	Error   *purchase.PlatformError
}

var (
	transactionIDPaths = []string{"transactionId", "orderId", "transactionIdentifier", "originalTransactionIdentifierIOS"}
	productIDPaths     = []string{"productId", "productIds.0", "sku", "skus.0", "productIdentifier"}
	tokenPaths         = []string{"purchaseToken", "purchaseTokenAndroid", "transactionReceipt", "jwsRepresentationIOS"}
	timePaths          = []string{"transactionDate", "purchaseTime", "purchaseTimeMillis", "transactionDateIOS"}
	orderIDPaths       = []string{"orderId", "originalTransactionIdentifierIOS"}
	signaturePaths     = []string{"signatureAndroid", "signature"}
	receiptPaths       = []string{"dataAndroid", "originalJson", "transactionReceipt"}
	acknowledgedPaths  = []string{"isAcknowledgedAndroid", "acknowledged", "isAcknowledged"}
	autoRenewPaths     = []string{"autoRenewingAndroid", "autoRenewing"}

	errorCodePaths     = []string{"code", "errorCode"}
	responseCodePaths  = []string{"responseCode", "debugResponseCode"}
	errorMessagePaths  = []string{"message", "debugMessage", "localizedDescription"}
	errorProductIDPath = []string{"productId", "sku"}
)

// DecodeEvent reads an envelope of the form {"type": "...", "payload": {...}}.
func DecodeEvent(raw []byte) (Event, error) {
	if !gjson.ValidBytes(raw) {
		return Event{}, ErrMalformedPayload
	}
	env := gjson.ParseBytes(raw)
	payload := env.Get("payload")
	if !payload.IsObject() {
		return Event{}, errs.Wrap(ErrMalformedPayload, "missing payload object")
	}

	switch EventType(env.Get("type").String()) {
	case EventPurchaseUpdated:
		o, err := outcomeOf(payload)
		if err != nil {
			return Event{}, err
		}
		return Event{Type: EventPurchaseUpdated, Outcome: &o}, nil
	case EventPurchaseError:
		e := platformErrorOf(payload)
		return Event{Type: EventPurchaseError, Error: &e}, nil
	}
	return Event{}, errs.Wrapf(ErrUnknownEventType, "type %q", env.Get("type").String())
}

func DecodeOutcome(raw []byte) (purchase.Outcome, error) {
	if !gjson.ValidBytes(raw) {
		return purchase.Outcome{}, ErrMalformedPayload
	}
	return outcomeOf(gjson.ParseBytes(raw))
}

// DecodeOwned reads a JSON array of owned purchases. Entries without a token are skipped.
func DecodeOwned(raw []byte) ([]purchase.Outcome, int, error) {
	if !gjson.ValidBytes(raw) {
		return nil, 0, ErrMalformedPayload
	}
	arr := gjson.ParseBytes(raw)
	if !arr.IsArray() {
		return nil, 0, errs.Wrap(ErrMalformedPayload, "expected an array")
	}

	var (
		out     []purchase.Outcome
		skipped int
	)
	arr.ForEach(func(_, item gjson.Result) bool {
		o, err := outcomeOf(item)
		if err != nil {
			skipped++
			return true
		}
		out = append(out, o)
		return true
	})
	return out, skipped, nil
}

func DecodePlatformError(raw []byte) (purchase.PlatformError, error) {
	if !gjson.ValidBytes(raw) {
		return purchase.PlatformError{}, ErrMalformedPayload
	}
	return platformErrorOf(gjson.ParseBytes(raw)), nil
}

func outcomeOf(r gjson.Result) (purchase.Outcome, error) {
	o := purchase.Outcome{
		TransactionID: firstString(r, transactionIDPaths),
		ProductID:     firstString(r, productIDPaths),
		PurchaseToken: firstString(r, tokenPaths),
		PurchaseTime:  firstTime(r, timePaths),
		State:         stateOf(r),
		Acknowledged:  firstBool(r, acknowledgedPaths),
		AutoRenewing:  firstBool(r, autoRenewPaths),
		OrderID:       firstString(r, orderIDPaths),
		Signature:     firstString(r, signaturePaths),
		RawReceipt:    firstString(r, receiptPaths),
	}
	if o.PurchaseToken == "" {
		return purchase.Outcome{}, ErrMissingToken
	}
	// Test purchases on some store versions carry no order id.
	if o.TransactionID == "" {
		o.TransactionID = o.PurchaseToken
	}
	return o, nil
}

func platformErrorOf(r gjson.Result) purchase.PlatformError {
	e := purchase.PlatformError{
		Code:      firstString(r, errorCodePaths),
		Message:   firstString(r, errorMessagePaths),
		ProductID: firstString(r, errorProductIDPath),
	}
	for _, p := range responseCodePaths {
		if v := r.Get(p); v.Exists() {
			e.ResponseCode = int(v.Int())
			break
		}
	}
	// Some bridges put the numeric billing code in "code".
	if n, err := strconv.Atoi(e.Code); err == nil && e.ResponseCode == 0 {
		e.ResponseCode = n
	}
	return e
}

func stateOf(r gjson.Result) purchase.State {
	// Billing library states: 0 unspecified, 1 purchased, 2 pending.
	if v := r.Get("purchaseStateAndroid"); v.Exists() {
		switch v.Int() {
		case 1:
			return purchase.StatePurchased
		case 2:
			return purchase.StatePending
		}
		return purchase.StateUnknown
	}
	if v := r.Get("transactionStateIOS"); v.Exists() {
		switch strings.ToLower(v.String()) {
		case "purchased", "restored":
			return purchase.StatePurchased
		case "deferred", "purchasing":
			return purchase.StatePending
		}
		return purchase.StateUnknown
	}
	if v := r.Get("purchaseState"); v.Exists() {
		if v.Type == gjson.String {
			switch strings.ToLower(v.String()) {
			case "purchased":
				return purchase.StatePurchased
			case "pending":
				return purchase.StatePending
			}
			return purchase.StateUnknown
		}
		// Developer API states: 0 purchased, 1 cancelled, 2 pending.
		switch v.Int() {
		case 0:
			return purchase.StatePurchased
		case 2:
			return purchase.StatePending
		}
		return purchase.StateUnknown
	}
	return purchase.StatePurchased
}

func firstString(r gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstBool(r gjson.Result, paths []string) bool {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			return v.Bool()
		}
	}
	return false
}

// firstTime accepts epoch milliseconds as a number or string, or RFC 3339.
func firstTime(r gjson.Result, paths []string) time.Time {
	for _, p := range paths {
		v := r.Get(p)
		if !v.Exists() {
			continue
		}
		switch v.Type {
		case gjson.Number:
			return time.UnixMilli(v.Int()).UTC()
		case gjson.String:
			if ms, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
				return time.UnixMilli(ms).UTC()
			}
			if t, err := time.Parse(time.RFC3339, v.String()); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}
