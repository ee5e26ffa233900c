package paypay

import (
	"context"
	"net/http"
)

// PaymentService covers direct payments, preauthorization capture/revert,
// continuous payments and refunds.
//
// Methods return a nil response and a nil error when PayPay reports the
// resource as not found.
type PaymentService struct {
	client *Client
}

func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*Response[PaymentDetails], error) {
	req.RequestedAt = s.client.requestedAt(req.RequestedAt)

	if err := s.client.validate(req); err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodPost, PathPayments, req, APICreatePayment)
}

func (s *PaymentService) Get(ctx context.Context, merchantPaymentID string) (*Response[PaymentDetails], error) {
	path, err := resourcePath(PathPayments, merchantPaymentID, "merchantPaymentId")
	if err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodGet, path, nil, APIGetPayment)
}

func (s *PaymentService) Cancel(ctx context.Context, merchantPaymentID string) (*Response[PaymentDetails], error) {
	path, err := resourcePath(PathPayments, merchantPaymentID, "merchantPaymentId")
	if err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodDelete, path, nil, APICancelPayment)
}

func (s *PaymentService) Capture(ctx context.Context, req CaptureRequest) (*Response[PaymentDetails], error) {
	req.RequestedAt = s.client.requestedAt(req.RequestedAt)

	if err := s.client.validate(req); err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodPost, PathCapture, req, APICapturePayment)
}

func (s *PaymentService) Revert(ctx context.Context, req RevertRequest) (*Response[RevertDetails], error) {
	req.RequestedAt = s.client.requestedAt(req.RequestedAt)

	if err := s.client.validate(req); err != nil {
		return nil, err
	}

	return call[RevertDetails](ctx, s.client, http.MethodPost, PathRevert, req, APIRevertAuthorize)
}

func (s *PaymentService) CreateContinuous(
	ctx context.Context,
	req ContinuousPaymentRequest,
) (*Response[PaymentDetails], error) {
	req.RequestedAt = s.client.requestedAt(req.RequestedAt)

	if err := s.client.validate(req); err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodPost, PathSubscriptionPayments, req,
		APICreateContinuousPayment)
}

func (s *PaymentService) Refund(ctx context.Context, req RefundRequest) (*Response[RefundDetails], error) {
	return s.client.refund(ctx, req, APIRefundPayment)
}

func (s *PaymentService) GetRefund(ctx context.Context, merchantRefundID string) (*Response[RefundDetails], error) {
	return s.client.getRefund(ctx, merchantRefundID)
}
