package gateway

import (
	"context"
	"time"
)

// StubClient is an in-memory gateway for tests and local development.
// ConfirmErr/CancelErr force failures; Canceled records compensating calls.
type StubClient struct {
	ConfirmErr error
	CancelErr  error
	Method     string
	Confirmed  []string
	Canceled   []string
}

func (s *StubClient) Confirm(ctx context.Context, paymentKey, orderID string, amount int) (*ConfirmResult, error) {
	if s.ConfirmErr != nil {
		return nil, s.ConfirmErr
	}
	s.Confirmed = append(s.Confirmed, paymentKey)
	method := s.Method
	if method == "" {
		method = "CARD"
	}
	return &ConfirmResult{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
		Method:     method,
		ApprovedAt: time.Now(),
	}, nil
}

func (s *StubClient) Cancel(ctx context.Context, paymentKey, reason string) error {
	if s.CancelErr != nil {
		return s.CancelErr
	}
	s.Canceled = append(s.Canceled, paymentKey)
	return nil
}
