package response

import (
	"purchase-engine/internal/usecase"

	"github.com/google/uuid"
)

type FailureResponse struct {
	Kind      string `json:"kind"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type PurchaseResponse struct {
	RequestID     uuid.UUID        `json:"requestId"`
	Success       bool             `json:"success"`
	Pending       bool             `json:"pending"`
	TransactionID string           `json:"transactionId,omitempty"`
	ProductID     string           `json:"productId"`
	PackageID     *uuid.UUID       `json:"packageId,omitempty"`
	Acknowledged  bool             `json:"acknowledged"`
	Reconciled    bool             `json:"reconciled"`
	Duplicate     bool             `json:"duplicate"`
	Sandbox       bool             `json:"sandbox"`
	Failure       *FailureResponse `json:"failure,omitempty"`
}

func FromPurchaseResult(res *usecase.PurchaseResult) PurchaseResponse {
	out := PurchaseResponse{
		RequestID:     res.RequestID,
		Success:       res.Success,
		Pending:       res.Pending,
		TransactionID: res.TransactionID,
		ProductID:     res.ProductID,
		Acknowledged:  res.Acknowledged,
		Reconciled:    res.Reconciled,
		Duplicate:     res.Duplicate,
		Sandbox:       res.Sandbox,
	}
	if res.PackageID != uuid.Nil {
		id := res.PackageID
		out.PackageID = &id
	}
	if res.Failure != nil {
		out.Failure = &FailureResponse{
			Kind:      string(res.Failure.Kind),
			Reason:    res.Failure.Reason,
			Message:   res.Failure.Message,
			Retryable: res.Failure.Retryable,
		}
	}
	return out
}

type RestoreFailureResponse struct {
	TransactionID string `json:"transactionId"`
	ProductID     string `json:"productId"`
	TimedOut      bool   `json:"timedOut"`
	Message       string `json:"message"`
}

type RestoreResponse struct {
	Restored     int                      `json:"restored"`
	Reconciled   int                      `json:"reconciled"`
	Duplicates   int                      `json:"duplicates"`
	Unmatched    int                      `json:"unmatched"`
	Pending      int                      `json:"pending"`
	Failures     []RestoreFailureResponse `json:"failures"`
	Entitlements *EntitlementsResponse    `json:"entitlements,omitempty"`
}

func FromRestoreResult(res *usecase.RestoreResult) (RestoreResponse, error) {
	out := RestoreResponse{
		Restored:   res.Restored,
		Reconciled: res.Reconciled,
		Duplicates: res.Duplicates,
		Unmatched:  res.Unmatched,
		Pending:    res.Pending,
		Failures:   make([]RestoreFailureResponse, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, RestoreFailureResponse{
			TransactionID: f.TransactionID,
			ProductID:     f.ProductID,
			TimedOut:      f.TimedOut(),
			Message:       f.Err.Error(),
		})
	}
	if res.Snapshot != nil {
		ent, err := FromSnapshot(res.Snapshot)
		if err != nil {
			return RestoreResponse{}, err
		}
		out.Entitlements = &ent
	}
	return out, nil
}
