// Package googleplay acknowledges purchases server-side through the Google Play
// Developer API, for deployments where the app forwards tokens instead of
// acknowledging on device.
package googleplay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/infra"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"

	androidpublisher "google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var ErrPackageNameRequired = errs.New("google play package name is required")

type Acknowledger struct {
	packageName string
	svc         *androidpublisher.Service
	logger      *slog.Logger
}

// New builds the Developer API client. Extra options override the service account credentials.
func New(ctx context.Context, cfg config.GooglePlayConfig, logger *slog.Logger, opts ...option.ClientOption) (*Acknowledger, error) {
	if cfg.PackageName == "" {
		return nil, ErrPackageNameRequired
	}

	var clientOpts []option.ClientOption
	if cfg.ServiceAccountJSON != "" {
		clientOpts = append(clientOpts,
			option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)),
			option.WithScopes(androidpublisher.AndroidpublisherScope),
		)
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := androidpublisher.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errs.Wrap(err, "androidpublisher.NewService")
	}

	return &Acknowledger{
		packageName: cfg.PackageName,
		svc:         svc,
		logger:      logger,
	}, nil
}

func (a *Acknowledger) Acknowledge(ctx context.Context, ack purchase.Acknowledgement) error {
	var err error
	if ack.Kind == product.KindSubscription {
		req := &androidpublisher.SubscriptionPurchasesAcknowledgeRequest{}
		err = a.svc.Purchases.Subscriptions.
			Acknowledge(a.packageName, ack.ProductID, ack.PurchaseToken, req).
			Context(ctx).
			Do()
	} else {
		req := &androidpublisher.ProductPurchasesAcknowledgeRequest{}
		err = a.svc.Purchases.Products.
			Acknowledge(a.packageName, ack.ProductID, ack.PurchaseToken, req).
			Context(ctx).
			Do()
	}
	if err == nil {
		return nil
	}

	msg := "acknowledge " + string(ack.Kind) + " " + ack.ProductID
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return infra.WrapRepoErr(a.logger, infra.KindNotFound, msg, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return infra.WrapRepoErr(a.logger, infra.KindTimeout, msg, err)
	}
	return infra.WrapRepoErr(a.logger, infra.KindPlatformFailure, msg, err)
}
