package payments

import (
	"context"
	"errors"
	"time"

	"fanloop-backend/handlers/subscriptions"
	"fanloop-backend/models"
	"fanloop-backend/pkg/gateway"
	"fanloop-backend/utils"

	"gorm.io/gorm"
)

// Gateway is the payment gateway the reconciler confirms against. Wired in
// main; tests swap in a stub.
var Gateway gateway.Client

const (
	orderTTL         = 30 * time.Minute
	membershipMonths = 1
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrAlreadyPaid    = errors.New("order already paid")
	ErrOrderClosed    = errors.New("order is in a terminal state")
	ErrAmountMismatch = errors.New("amount does not match the order")
)

// Confirm settles an order against the gateway and records the outcome.
//
// The gateway call happens before any local transaction is opened: holding a
// DB transaction across a slow external call is the one thing this flow must
// never do. On gateway success, payment insert + order transition + membership
// renewal commit atomically; if that commit fails after the charge went
// through, a single compensating cancel is issued against the gateway and the
// original error is re-raised. If the cancel itself fails, it is logged at
// critical level for manual reconciliation — there is no retry loop.
func Confirm(ctx context.Context, gdb *gorm.DB, gw gateway.Client, orderID, paymentKey string, amount int) (*models.Payment, error) {
	var order models.Order
	if err := gdb.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status == models.OrderPaid {
		return nil, ErrAlreadyPaid
	}
	if order.Status.Terminal() {
		return nil, ErrOrderClosed
	}
	// The authoritative amount is what was recorded at order creation; the
	// client-supplied value only has to agree with it.
	if order.Amount != amount {
		return nil, ErrAmountMismatch
	}

	if err := gdb.Model(&order).Update("status", models.OrderInProgress).Error; err != nil {
		return nil, err
	}

	res, gwErr := gw.Confirm(ctx, paymentKey, orderID, amount)
	if gwErr != nil {
		if err := recordFailure(gdb, &order, gwErr); err != nil {
			utils.LogError(err, "Error persisting order failure state")
		}
		return nil, gwErr
	}

	payment := models.Payment{
		PaymentKey: res.PaymentKey,
		OrderID:    order.OrderID,
		BuyerID:    order.BuyerID,
		CreatorID:  order.CreatorID,
		Amount:     res.Amount,
		Status:     models.PaymentPaid,
		PaidAt:     &res.ApprovedAt,
	}

	txErr := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status": models.OrderPaid,
			"method": res.Method,
		}).Error; err != nil {
			return err
		}
		return subscriptions.RenewMembership(tx, order.BuyerID, order.CreatorID, membershipMonths)
	})
	if txErr != nil {
		// The gateway already took the money; give it back.
		if cancelErr := gw.Cancel(ctx, res.PaymentKey, "internal bookkeeping failure"); cancelErr != nil {
			utils.LogCritical(cancelErr, "Compensating cancel failed after charge, payment key "+res.PaymentKey+" needs manual reconciliation")
		}
		return nil, txErr
	}

	return &payment, nil
}

// recordFailure maps a gateway rejection onto the order's terminal state:
// a checkout the user closed becomes CANCELED, everything else FAILED.
func recordFailure(gdb *gorm.DB, order *models.Order, gwErr error) error {
	status := models.OrderFailed
	if gateway.UserCanceled(gwErr) {
		status = models.OrderCanceled
	}
	return gdb.Model(order).Update("status", status).Error
}

// SweepExpiredOrders deletes PENDING orders past their expiry. Nothing was
// ever charged for them, so plain deletion needs no compensation.
func SweepExpiredOrders(gdb *gorm.DB, now time.Time) (int64, error) {
	res := gdb.Where("status = ? AND expires_at < ?", models.OrderPending, now).Delete(&models.Order{})
	return res.RowsAffected, res.Error
}
