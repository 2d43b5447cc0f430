package payments

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"fanloop-backend/models"
	"fanloop-backend/pkg/gateway"
	"fanloop-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	orderUUID  = "11111111-e89b-12d3-a456-426614174000"
	buyerUUID  = "22222222-e89b-12d3-a456-426614174000"
	sellerUUID = "33333333-e89b-12d3-a456-426614174000"
)

func expectOrderLookup(mock sqlmock.Sqlmock, orderID string, status models.OrderStatus, amount int) {
	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE order_id = \$1(.+)`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "buyer_id", "creator_id", "amount", "status", "expires_at"}).
			AddRow(orderUUID, orderID, buyerUUID, sellerUUID, amount, string(status), time.Now().Add(10*time.Minute)))
}

func TestConfirm_OrderNotFound(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE order_id = \$1(.+)`).
		WithArgs("missing").
		WillReturnError(gorm.ErrRecordNotFound)

	stub := &gateway.StubClient{}
	_, err := Confirm(context.Background(), gdb, stub, "missing", "pay_1", 4900)

	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, stub.Confirmed)
}

func TestConfirm_AlreadyPaidIsIdempotentError(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectOrderLookup(mock, "order_1", models.OrderPaid, 4900)

	stub := &gateway.StubClient{}
	_, err := Confirm(context.Background(), gdb, stub, "order_1", "pay_1", 4900)

	// No second charge may ever reach the gateway.
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Empty(t, stub.Confirmed)
}

func TestConfirm_TerminalOrderRejected(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectOrderLookup(mock, "order_1", models.OrderFailed, 4900)

	stub := &gateway.StubClient{}
	_, err := Confirm(context.Background(), gdb, stub, "order_1", "pay_1", 4900)

	assert.ErrorIs(t, err, ErrOrderClosed)
	assert.Empty(t, stub.Confirmed)
}

func TestConfirm_AmountMismatch(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectOrderLookup(mock, "order_1", models.OrderPending, 4900)

	stub := &gateway.StubClient{}
	_, err := Confirm(context.Background(), gdb, stub, "order_1", "pay_1", 100)

	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Empty(t, stub.Confirmed)
}

func TestConfirm_Success(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectOrderLookup(mock, "order_1", models.OrderPending, 4900)

	// Order moves to IN_PROGRESS before the gateway call.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Payment insert + order transition + membership renewal, one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("payment123"))
	mock.ExpectExec(`UPDATE "orders" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.+)`).
		WithArgs(sellerUUID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow(sellerUUID, "CREATOR"))
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE user_id = \$1 AND creator_id = \$2(.+)`).
		WithArgs(buyerUUID, sellerUUID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "creator_id", "status", "tier"}).
			AddRow("sub123", buyerUUID, sellerUUID, "ACTIVE", "FREE"))
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stub := &gateway.StubClient{}
	payment, err := Confirm(context.Background(), gdb, stub, "order_1", "pay_1", 4900)

	assert.NoError(t, err)
	assert.Equal(t, []string{"pay_1"}, stub.Confirmed)
	assert.Empty(t, stub.Canceled)
	assert.Equal(t, "pay_1", payment.PaymentKey)
	assert.Equal(t, 4900, payment.Amount)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.NotNil(t, payment.PaidAt)
}

func TestConfirm_UserCanceledMarksOrderCanceled(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectOrderLookup(mock, "order_1", models.OrderPending, 4900)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// recordFailure writes the terminal state.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stub := &gateway.StubClient{
		ConfirmErr: &gateway.Error{Status: 400, Code: gateway.CodeUserCancel},
	}
	_, err := Confirm(context.Background(), gdb, stub, "order_1", "pay_1", 4900)

	assert.Error(t, err)
	assert.True(t, gateway.UserCanceled(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_CompensatingCancelOnCommitFailure(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectOrderLookup(mock, "order_1", models.OrderPending, 4900)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// The payment insert blows up after the gateway took the money.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments" (.+) RETURNING "id"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	stub := &gateway.StubClient{}
	_, err := Confirm(context.Background(), gdb, stub, "order_1", "pay_1", 4900)

	assert.Error(t, err)
	assert.Equal(t, []string{"pay_1"}, stub.Confirmed)
	// The charge must have been given back.
	assert.Equal(t, []string{"pay_1"}, stub.Canceled)
}

func TestSweepExpiredOrders(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "orders" WHERE status = \$1 AND expires_at < \$2`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := SweepExpiredOrders(gdb, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
