package paypay

const (
	Version = "1.0.0"

	SandboxBaseURL    = "https://stg-api.sandbox.paypay.ne.jp"
	ProductionBaseURL = "https://api.paypay.ne.jp"
	PerfBaseURL       = "https://perf-api.paypay.ne.jp"
)

const (
	PathPayments             = "/v2/payments"
	PathCapture              = "/v2/payments/capture"
	PathRevert               = "/v2/payments/preauthorize/revert"
	PathRefunds              = "/v2/refunds"
	PathSubscriptionPayments = "/v1/subscription/payments"
	PathRequestOrder         = "/v1/requestOrder"
)

// API names identify each endpoint in resolution hints.
const (
	APICreatePayment           = "v2_createPayment"
	APIGetPayment              = "v2_getPaymentDetail"
	APICancelPayment           = "v2_cancelPayment"
	APICapturePayment          = "v2_captureAuthorizedOrder"
	APIRevertAuthorize         = "v2_revertAuthorizedOrder"
	APIRefundPayment           = "v2_createRefundPayment"
	APIGetRefund               = "v2_getRefundDetails"
	APICreateContinuousPayment = "v1_createSubscriptionPayment"
	APICreateRequestOrder      = "v1_createRequestOrder"
	APIGetRequestOrder         = "v1_getRequestOrder"
	APICancelRequestOrder      = "v1_deleteRequestOrder"
	APIRefundRequestOrder      = "v1_createRequestOrderRefund"
)
