package settlements

import (
	"time"

	"fanloop-backend/models"
	"fanloop-backend/utils"

	"gorm.io/gorm"
)

// RecordLedger writes one RECORDED settlement item per confirmed payment of
// the creator inside [start, end]. Payments already present in the ledger are
// skipped, so re-running any window is safe.
func RecordLedger(gdb *gorm.DB, creatorID string, start, end time.Time) (int, error) {
	var paymentsInWindow []models.Payment
	err := gdb.Where("creator_id = ? AND status = ? AND paid_at >= ? AND paid_at <= ?",
		creatorID, models.PaymentPaid, start, end).Find(&paymentsInWindow).Error
	if err != nil {
		return 0, err
	}
	if len(paymentsInWindow) == 0 {
		return 0, nil
	}

	var recordedIDs []string
	err = gdb.Model(&models.SettlementItem{}).
		Where("creator_id = ?", creatorID).
		Pluck("payment_id", &recordedIDs).Error
	if err != nil {
		return 0, err
	}
	recorded := make(map[string]bool, len(recordedIDs))
	for _, id := range recordedIDs {
		recorded[id] = true
	}

	created := 0
	for _, p := range paymentsInWindow {
		if recorded[p.ID] || p.PaidAt == nil {
			continue
		}
		fee := utils.PlatformFee(p.Amount)
		item := models.SettlementItem{
			CreatorID:        creatorID,
			PaymentID:        p.ID,
			GrossAmount:      p.Amount,
			PlatformFee:      fee,
			SettlementAmount: p.Amount - fee,
			Status:           models.SettlementItemRecorded,
		}
		if err := gdb.Create(&item).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ConfirmMonth folds the creator's unattached RECORDED items of the month
// before ref into one completed settlement. The item query excludes anything
// already attached, so a second run in the same month is a no-op.
func ConfirmMonth(gdb *gorm.DB, creatorID string, ref time.Time) (*models.Settlement, error) {
	start, end := PriorMonthWindow(ref)

	var items []models.SettlementItem
	err := gdb.Where("creator_id = ? AND status = ? AND settlement_id IS NULL AND created_at >= ? AND created_at < ?",
		creatorID, models.SettlementItemRecorded, start, end.AddDate(0, 0, 1)).Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var settlement models.Settlement
	err = gdb.Transaction(func(tx *gorm.DB) error {
		settlement = models.Settlement{
			CreatorID:   creatorID,
			PeriodStart: start,
			PeriodEnd:   end,
			TotalAmount: 0,
			Status:      models.SettlementPending,
		}
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}

		total := 0
		for i := range items {
			if err := tx.Model(&items[i]).Updates(map[string]interface{}{
				"settlement_id": settlement.ID,
				"status":        models.SettlementItemConfirmed,
			}).Error; err != nil {
				return err
			}
			total += items[i].SettlementAmount
		}

		now := time.Now()
		settlement.TotalAmount = total
		settlement.Status = models.SettlementCompleted
		settlement.SettledAt = &now
		return tx.Model(&models.Settlement{}).Where("id = ?", settlement.ID).Updates(map[string]interface{}{
			"total_amount": total,
			"status":       models.SettlementCompleted,
			"settled_at":   now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

// RunWeeklyLedger records the last completed Mon–Sun window for every
// creator. One creator failing does not stop the rest.
func RunWeeklyLedger(gdb *gorm.DB, now time.Time) {
	start, end := LastWeekWindow(now)
	forEachCreator(gdb, func(creatorID string) {
		n, err := RecordLedger(gdb, creatorID, start, end)
		if err != nil {
			utils.LogError(err, "Weekly ledger failed for creator "+creatorID)
			return
		}
		if n > 0 {
			utils.LogInfo("Weekly ledger recorded items for creator " + creatorID)
		}
	})
}

// RunMonthlyConfirm rolls the prior month up for every creator.
func RunMonthlyConfirm(gdb *gorm.DB, now time.Time) {
	forEachCreator(gdb, func(creatorID string) {
		if _, err := ConfirmMonth(gdb, creatorID, now); err != nil {
			utils.LogError(err, "Monthly confirm failed for creator "+creatorID)
		}
	})
}

func forEachCreator(gdb *gorm.DB, fn func(creatorID string)) {
	var creatorIDs []string
	err := gdb.Model(&models.User{}).Where("role = ?", models.CreatorRole).Pluck("id", &creatorIDs).Error
	if err != nil {
		utils.LogError(err, "Error listing creators for settlement batch")
		return
	}
	for _, id := range creatorIDs {
		fn(id)
	}
}

// LastWeekWindow returns the most recent completed Monday–Sunday range,
// as calendar-day bounds [Monday 00:00, Sunday 23:59:59.999...].
func LastWeekWindow(now time.Time) (time.Time, time.Time) {
	today := truncateToDay(now)
	// Monday of the current week.
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thisMonday := today.AddDate(0, 0, -(weekday - 1))
	start := thisMonday.AddDate(0, 0, -7)
	end := thisMonday.Add(-time.Nanosecond)
	return start, end
}

// CurrentWeekWindow covers Monday of this week up to now, for running the
// ledger over the partial week.
func CurrentWeekWindow(now time.Time) (time.Time, time.Time) {
	today := truncateToDay(now)
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := today.AddDate(0, 0, -(weekday - 1))
	return start, now
}

// PriorMonthWindow returns [1st, last day] of the month before ref.
func PriorMonthWindow(ref time.Time) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	firstOfThisMonth := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	start := firstOfThisMonth.AddDate(0, -1, 0)
	end := firstOfThisMonth.AddDate(0, 0, -1)
	return start, end
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
