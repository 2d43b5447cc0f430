package subscriptions

import (
	"testing"
	"time"

	"fanloop-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextExpiry_NoCurrentExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 45, 0, 0, time.UTC)
	got := NextExpiry(nil, now, 1)
	assert.Equal(t, date(2025, 4, 10), got)
}

func TestNextExpiry_ExtendsFromFutureExpiry(t *testing.T) {
	// Renewing before expiry must not lose the remaining days.
	now := date(2025, 3, 10)
	current := date(2025, 3, 20)
	got := NextExpiry(&current, now, 1)
	assert.Equal(t, date(2025, 4, 20), got)
}

func TestNextExpiry_PastExpiryStartsFromToday(t *testing.T) {
	now := date(2025, 3, 10)
	current := date(2025, 2, 1)
	got := NextExpiry(&current, now, 1)
	assert.Equal(t, date(2025, 4, 10), got)
}

func TestNextExpiry_ExpiringTodayExtendsFromToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	current := date(2025, 3, 10)
	got := NextExpiry(&current, now, 1)
	assert.Equal(t, date(2025, 4, 10), got)
}

func TestNextExpiry_MonthEndOverflow(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month to Mar 3 (or Mar 2 on leap years).
	now := date(2025, 1, 31)
	got := NextExpiry(nil, now, 1)
	assert.Equal(t, date(2025, 3, 3), got)
}

func TestNextExpiry_MultipleMonths(t *testing.T) {
	now := date(2025, 3, 10)
	got := NextExpiry(nil, now, 3)
	assert.Equal(t, date(2025, 6, 10), got)
}

func TestNextExpiry_RenewalNeverShortens(t *testing.T) {
	now := date(2025, 3, 10)
	for day := 1; day <= 28; day++ {
		current := date(2025, 3, day)
		got := NextExpiry(&current, now, 1)
		assert.False(t, got.Before(current.AddDate(0, 1, 0)),
			"renewal with expiry on day %d lost paid time", day)
	}
}

func TestSweepExpired_DowngradesPastExpiry(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := SweepExpired(gdb, date(2025, 6, 15))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

const (
	warnSubID     = "aaa11111-e89b-12d3-a456-426614174000"
	warnUserID    = "bbb22222-e89b-12d3-a456-426614174000"
	warnCreatorID = "ccc33333-e89b-12d3-a456-426614174000"
)

func expectWarningWindowScan(mock sqlmock.Sqlmock, expires time.Time) {
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE status = \$1 AND expires_at >= \$2 AND expires_at < \$3`).
		WithArgs("ACTIVE", date(2025, 6, 22), date(2025, 6, 23)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "creator_id", "status", "tier", "expires_at"}).
			AddRow(warnSubID, warnUserID, warnCreatorID, "ACTIVE", "PAID", expires))
}

func TestSweepExpiryWarnings_NotifiesOncePerDay(t *testing.T) {
	gdb, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	expires := date(2025, 6, 22)

	// First run: nothing sent yet, the warning goes out inside the handle.
	expectWarningWindowScan(mock, expires)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE user_id = \$1 AND type = \$2 AND target_ref = \$3 AND created_at >= \$4`).
		WithArgs(warnUserID, "SUBSCRIPTION_EXPIRING", warnSubID, date(2025, 6, 15)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.+)`).
		WithArgs(warnCreatorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name"}).AddRow(warnCreatorID, "creatorname"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("notif123"))
	mock.ExpectCommit()

	assert.NoError(t, SweepExpiryWarnings(gdb, now, 7))

	// Same-day re-run, as after a process restart: today's row suppresses a
	// second insert.
	expectWarningWindowScan(mock, expires)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE user_id = \$1 AND type = \$2 AND target_ref = \$3 AND created_at >= \$4`).
		WithArgs(warnUserID, "SUBSCRIPTION_EXPIRING", warnSubID, date(2025, 6, 15)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	assert.NoError(t, SweepExpiryWarnings(gdb, now, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
