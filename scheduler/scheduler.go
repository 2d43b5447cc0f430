// Package scheduler runs the periodic jobs: order janitor, subscription
// sweeps, and settlement batches. The janitor is a fixed-delay loop, the
// date-driven jobs fire once per calendar day at the day boundary. A job
// never overlaps itself.
package scheduler

import (
	"time"

	"fanloop-backend/db"
	"fanloop-backend/handlers/payments"
	"fanloop-backend/handlers/settlements"
	"fanloop-backend/handlers/subscriptions"
	"fanloop-backend/utils"
)

const janitorInterval = 5 * time.Minute

// Start launches the background jobs.
func Start() {
	go fixedDelay(janitorInterval, orderJanitor)
	go daily(dailyJobs)
	utils.LogInfo("Scheduler started")
}

// fixedDelay sleeps the full interval after each run completes.
func fixedDelay(interval time.Duration, job func()) {
	for {
		job()
		time.Sleep(interval)
	}
}

// daily runs the job once per calendar day, shortly after midnight. Sleeping
// to the day boundary instead of a fixed 24h keeps restarts and sleep drift
// from double-running or skipping a date: a process started mid-day waits for
// the next day rather than re-running today's jobs.
func daily(job func()) {
	for {
		time.Sleep(untilNextDay(time.Now()))
		job()
	}
}

// untilNextDay returns the duration to one minute past the next midnight. The
// minute of slack keeps the wake-up on the right side of the boundary.
func untilNextDay(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now) + time.Minute
}

func orderJanitor() {
	n, err := payments.SweepExpiredOrders(db.DB, time.Now())
	if err != nil {
		utils.LogError(err, "Order janitor failed")
		return
	}
	if n > 0 {
		utils.LogInfo("Order janitor purged expired pending orders")
	}
}

// dailyJobs runs the date-driven work: expiry downgrades and warnings every
// day, the settlement ledger on Mondays, the monthly confirmation on the 1st.
func dailyJobs() {
	now := time.Now()

	if _, err := subscriptions.SweepExpired(db.DB, now); err != nil {
		utils.LogError(err, "Subscription expiry sweep failed")
	}

	for _, days := range []int{7, 3} {
		if err := subscriptions.SweepExpiryWarnings(db.DB, now, days); err != nil {
			utils.LogError(err, "Subscription expiry warning sweep failed")
		}
	}

	if now.Weekday() == time.Monday {
		settlements.RunWeeklyLedger(db.DB, now)
	}

	if now.Day() == 1 {
		settlements.RunMonthlyConfirm(db.DB, now)
	}
}
