package paypay

import (
	"context"
	"net/http"
)

func (c *Client) refund(ctx context.Context, req RefundRequest, apiName string) (*Response[RefundDetails], error) {
	req.RequestedAt = c.requestedAt(req.RequestedAt)

	if err := c.validate(req); err != nil {
		return nil, err
	}

	return call[RefundDetails](ctx, c, http.MethodPost, PathRefunds, req, apiName)
}

func (c *Client) getRefund(ctx context.Context, merchantRefundID string) (*Response[RefundDetails], error) {
	path, err := resourcePath(PathRefunds, merchantRefundID, "merchantRefundId")
	if err != nil {
		return nil, err
	}

	return call[RefundDetails](ctx, c, http.MethodGet, path, nil, APIGetRefund)
}
