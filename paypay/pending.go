package paypay

import (
	"context"
	"net/http"
)

// PendingPaymentService manages request orders that wait for the user to
// confirm in the PayPay app.
type PendingPaymentService struct {
	client *Client
}

func (s *PendingPaymentService) Create(
	ctx context.Context,
	req PendingPaymentRequest,
) (*Response[PendingPayment], error) {
	req.RequestedAt = s.client.requestedAt(req.RequestedAt)

	if err := s.client.validate(req); err != nil {
		return nil, err
	}

	return call[PendingPayment](ctx, s.client, http.MethodPost, PathRequestOrder, req, APICreateRequestOrder)
}

func (s *PendingPaymentService) Get(ctx context.Context, merchantPaymentID string) (*Response[PaymentDetails], error) {
	path, err := resourcePath(PathRequestOrder, merchantPaymentID, "merchantPaymentId")
	if err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodGet, path, nil, APIGetRequestOrder)
}

func (s *PendingPaymentService) Cancel(
	ctx context.Context,
	merchantPaymentID string,
) (*Response[PaymentDetails], error) {
	path, err := resourcePath(PathRequestOrder, merchantPaymentID, "merchantPaymentId")
	if err != nil {
		return nil, err
	}

	return call[PaymentDetails](ctx, s.client, http.MethodDelete, path, nil, APICancelRequestOrder)
}

func (s *PendingPaymentService) Refund(ctx context.Context, req RefundRequest) (*Response[RefundDetails], error) {
	return s.client.refund(ctx, req, APIRefundRequestOrder)
}

func (s *PendingPaymentService) GetRefund(
	ctx context.Context,
	merchantRefundID string,
) (*Response[RefundDetails], error) {
	return s.client.getRefund(ctx, merchantRefundID)
}
