// Package gateway wraps the third-party payment service. The platform never
// talks to card networks itself: the client pays inside the gateway widget,
// then hands us a payment key which we confirm (and, if our own bookkeeping
// fails afterwards, cancel) through this client.
package gateway

import (
	"context"
	"time"
)

// ConfirmResult is the gateway's view of an approved charge.
type ConfirmResult struct {
	PaymentKey string    `json:"paymentKey"`
	OrderID    string    `json:"orderId"`
	Amount     int       `json:"totalAmount"`
	Method     string    `json:"method"`
	ApprovedAt time.Time `json:"approvedAt"`
}

// Client is the contract the reconciler depends on. Cancel is best-effort:
// callers treat its failure as an operator problem, not a retryable one.
type Client interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int) (*ConfirmResult, error)
	Cancel(ctx context.Context, paymentKey, reason string) error
}

// Error is a gateway-side rejection. Status is the HTTP class the gateway
// answered with; Code is its machine-readable failure code.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return "gateway: " + e.Code + ": " + e.Message
	}
	return "gateway: " + e.Code
}

// Codes the gateway uses for a checkout the user abandoned. Anything else on
// a 4xx is a decline.
const (
	CodeUserCancel     = "PAY_PROCESS_CANCELED"
	CodeUserAborted    = "PAY_PROCESS_ABORTED"
	CodeInvalidKey     = "INVALID_PAYMENT_KEY"
	CodeRejectCard     = "REJECT_CARD_COMPANY"
	CodeExceedsLimit   = "EXCEED_MAX_AMOUNT"
	CodeProviderError  = "PROVIDER_ERROR"
	CodeNetworkTimeout = "NETWORK_TIMEOUT"
)

// UserCanceled reports whether the failure means the buyer closed the
// checkout UI rather than the charge being declined.
func UserCanceled(err error) bool {
	gerr, ok := err.(*Error)
	if !ok {
		return false
	}
	return gerr.Code == CodeUserCancel || gerr.Code == CodeUserAborted
}

// ClientFault reports whether the gateway classified the failure as a 4xx.
func ClientFault(err error) bool {
	gerr, ok := err.(*Error)
	if !ok {
		return false
	}
	return gerr.Status >= 400 && gerr.Status < 500
}
