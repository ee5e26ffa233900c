package paypay

import "github.com/andyle182810/paypayopa/httpclient"

type ResultInfo = httpclient.ResultInfo

// Response is the envelope PayPay wraps around every result.
type Response[T any] struct {
	ResultInfo ResultInfo `json:"resultInfo"`
	Data       *T         `json:"data"`
}

type Amount struct {
	Amount   int64  `json:"amount"   validate:"gt=0"`
	Currency string `json:"currency" validate:"required,currency"`
}

type OrderItem struct {
	Name      string  `json:"name"                validate:"required"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"            validate:"gt=0"`
	ProductID string  `json:"productId,omitempty"`
	UnitPrice *Amount `json:"unitPrice,omitempty"`
}

type PaymentMethod struct {
	Amount Amount `json:"amount"`
	Type   string `json:"type"`
}

type CreatePaymentRequest struct {
	MerchantPaymentID   string         `json:"merchantPaymentId"             validate:"required,merchantid"`
	UserAuthorizationID string         `json:"userAuthorizationId,omitempty"`
	Amount              Amount         `json:"amount"`
	RequestedAt         int64          `json:"requestedAt"`
	StoreID             string         `json:"storeId,omitempty"`
	TerminalID          string         `json:"terminalId,omitempty"`
	OrderReceiptNumber  string         `json:"orderReceiptNumber,omitempty"`
	OrderDescription    string         `json:"orderDescription,omitempty" validate:"omitempty,max=255"`
	OrderItems          []OrderItem    `json:"orderItems,omitempty"          validate:"omitempty,dive"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

type ContinuousPaymentRequest struct {
	MerchantPaymentID   string         `json:"merchantPaymentId"            validate:"required,merchantid"`
	UserAuthorizationID string         `json:"userAuthorizationId"          validate:"required"`
	Amount              Amount         `json:"amount"`
	RequestedAt         int64          `json:"requestedAt"`
	StoreID             string         `json:"storeId,omitempty"`
	TerminalID          string         `json:"terminalId,omitempty"`
	OrderReceiptNumber  string         `json:"orderReceiptNumber,omitempty"`
	OrderDescription    string         `json:"orderDescription,omitempty" validate:"omitempty,max=255"`
	OrderItems          []OrderItem    `json:"orderItems,omitempty"         validate:"omitempty,dive"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

type PendingPaymentRequest struct {
	MerchantPaymentID   string         `json:"merchantPaymentId"            validate:"required,merchantid"`
	UserAuthorizationID string         `json:"userAuthorizationId"          validate:"required"`
	Amount              Amount         `json:"amount"`
	RequestedAt         int64          `json:"requestedAt"`
	ExpiryDate          int64          `json:"expiryDate,omitempty"`
	StoreID             string         `json:"storeId,omitempty"`
	TerminalID          string         `json:"terminalId,omitempty"`
	OrderReceiptNumber  string         `json:"orderReceiptNumber,omitempty"`
	OrderDescription    string         `json:"orderDescription,omitempty" validate:"omitempty,max=255"`
	OrderItems          []OrderItem    `json:"orderItems,omitempty"         validate:"omitempty,dive"`
	Metadata            map[string]any `json:"metadata,omitempty"`
	ProductType         string         `json:"productType,omitempty"`
}

type CaptureRequest struct {
	MerchantPaymentID string `json:"merchantPaymentId" validate:"required,merchantid"`
	Amount            Amount `json:"amount"`
	MerchantCaptureID string `json:"merchantCaptureId" validate:"required,merchantid"`
	RequestedAt       int64  `json:"requestedAt"`
	OrderDescription  string `json:"orderDescription"  validate:"required,max=255"`
}

type RevertRequest struct {
	MerchantRevertID string `json:"merchantRevertId" validate:"required,merchantid"`
	PaymentID        string `json:"paymentId"        validate:"required"`
	RequestedAt      int64  `json:"requestedAt"`
	Reason           string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

type RefundRequest struct {
	MerchantRefundID string `json:"merchantRefundId" validate:"required,merchantid"`
	PaymentID        string `json:"paymentId"        validate:"required"`
	Amount           Amount `json:"amount"`
	RequestedAt      int64  `json:"requestedAt"`
	Reason           string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

type RefundDetails struct {
	Status            string `json:"status"`
	AcceptedAt        int64  `json:"acceptedAt"`
	RequestedAt       int64  `json:"requestedAt"`
	PaymentID         string `json:"paymentId"`
	MerchantRefundID  string `json:"merchantRefundId"`
	MerchantPaymentID string `json:"merchantPaymentId,omitempty"`
	Amount            Amount `json:"amount"`
	Reason            string `json:"reason"`
}

type RefundList struct {
	Data []RefundDetails `json:"data"`
}

type PaymentDetails struct {
	Status              string          `json:"status"`
	AcceptedAt          int64           `json:"acceptedAt"`
	RequestedAt         int64           `json:"requestedAt"`
	PaymentID           string          `json:"paymentId"`
	MerchantPaymentID   string          `json:"merchantPaymentId"`
	UserAuthorizationID string          `json:"userAuthorizationId"`
	Amount              Amount          `json:"amount"`
	OrderDescription    string          `json:"orderDescription"`
	OrderItems          []OrderItem     `json:"orderItems"`
	PaymentMethods      []PaymentMethod `json:"paymentMethods"`
	StoreID             string          `json:"storeId,omitempty"`
	TerminalID          string          `json:"terminalId,omitempty"`
	OrderReceiptNumber  string          `json:"orderReceiptNumber,omitempty"`
	Metadata            map[string]any  `json:"metadata,omitempty"`
	Refunds             RefundList      `json:"refunds"`
}

type PendingPayment struct {
	RequestedAt         int64          `json:"requestedAt"`
	MerchantPaymentID   string         `json:"merchantPaymentId"`
	UserAuthorizationID string         `json:"userAuthorizationId"`
	Amount              Amount         `json:"amount"`
	ExpiryDate          int64          `json:"expiryDate"`
	StoreID             string         `json:"storeId,omitempty"`
	TerminalID          string         `json:"terminalId,omitempty"`
	OrderReceiptNumber  string         `json:"orderReceiptNumber,omitempty"`
	OrderDescription    string         `json:"orderDescription,omitempty"`
	OrderItems          []OrderItem    `json:"orderItems,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
	ProductType         string         `json:"productType,omitempty"`
}

type RevertDetails struct {
	Status      string `json:"status"`
	AcceptedAt  int64  `json:"acceptedAt"`
	RequestedAt int64  `json:"requestedAt"`
	PaymentID   string `json:"paymentId"`
	Reason      string `json:"reason"`
}
