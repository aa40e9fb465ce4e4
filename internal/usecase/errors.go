package usecase

import "purchase-engine/internal/pkg/errs"

var (
	ErrConnectionUnavailable   = errs.New("store connection unavailable")
	ErrProductNotFound         = errs.New("product not found")
	ErrOfferParameterMissing   = errs.New("subscription offer parameter missing")
	ErrPurchaseInProgress      = errs.New("another purchase is already in progress")
	ErrUserCancelled           = errs.New("purchase cancelled by user")
	ErrPlatformNetwork         = errs.New("platform network error")
	ErrPlatformFailure         = errs.New("platform purchase failure")
	ErrAcknowledgmentFailed    = errs.New("acknowledgment failed")
	ErrLocalValidationFailed   = errs.New("local purchase validation failed")
	ErrBackendValidationFailed = errs.New("backend validation failed")
	ErrPackageUnresolved       = errs.New("no package matches product")
	ErrRestoreItemTimeout      = errs.New("restore item timed out")
	ErrRestoreItemUnmatched    = errs.New("restore item has no matching package")
)
