package subscriptions

import (
	"errors"
	"time"

	"fanloop-backend/models"
	"fanloop-backend/notify"
	"fanloop-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrSelfSubscribe     = errors.New("cannot subscribe to yourself")
	ErrNotCreator        = errors.New("target user is not a creator")
	ErrAlreadySubscribed = errors.New("subscription already exists")
	ErrNotFoundSubscribe = errors.New("no subscription to renew")
)

// checkPair validates the subscriber/creator edge preconditions shared by
// subscribe and renew.
func checkPair(tx *gorm.DB, subscriberID, creatorID string) error {
	if subscriberID == creatorID {
		return ErrSelfSubscribe
	}
	var creator models.User
	if err := tx.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotCreator
		}
		return err
	}
	if creator.Role != models.CreatorRole {
		return ErrNotCreator
	}
	return nil
}

// Subscribe creates the free, non-expiring edge. The unique pair index backs
// up the duplicate check against concurrent submissions.
func Subscribe(tx *gorm.DB, subscriberID, creatorID string) (*models.Subscription, error) {
	if err := checkPair(tx, subscriberID, creatorID); err != nil {
		return nil, err
	}

	var existing models.Subscription
	err := tx.Where("user_id = ? AND creator_id = ?", subscriberID, creatorID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := models.Subscription{
		UserID:    subscriberID,
		CreatorID: creatorID,
		Status:    models.SubscriptionActive,
		Tier:      models.TierFree,
		ExpiresAt: nil,
	}
	if err := tx.Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return &sub, nil
}

// NextExpiry extends in whole calendar months from whichever is later,
// today or the current expiry. Renewing a day before expiry extends from the
// expiry date, never stacking extra days.
func NextExpiry(current *time.Time, now time.Time, months int) time.Time {
	base := truncateToDay(now)
	if current != nil {
		cur := truncateToDay(*current)
		if cur.After(base) {
			base = cur
		}
	}
	return base.AddDate(0, months, 0)
}

// RenewMembership flips the edge to the paid tier and pushes the expiry out.
// A renewal always assumes a prior subscribe; the payment flow guarantees it.
func RenewMembership(tx *gorm.DB, subscriberID, creatorID string, months int) error {
	if err := checkPair(tx, subscriberID, creatorID); err != nil {
		return err
	}

	var sub models.Subscription
	err := tx.Where("user_id = ? AND creator_id = ?", subscriberID, creatorID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundSubscribe
		}
		return err
	}

	expiry := NextExpiry(sub.ExpiresAt, time.Now(), months)
	return tx.Model(&sub).Updates(map[string]interface{}{
		"status":     models.SubscriptionActive,
		"tier":       models.TierPaid,
		"expires_at": expiry,
	}).Error
}

// SweepExpired downgrades every active paid subscription past its expiry to
// the free, non-expiring shape. The row survives: the relationship stays at
// the free tier instead of disappearing.
func SweepExpired(tx *gorm.DB, now time.Time) (int64, error) {
	res := tx.Model(&models.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionActive, truncateToDay(now)).
		Updates(map[string]interface{}{
			"tier":       models.TierFree,
			"expires_at": nil,
		})
	return res.RowsAffected, res.Error
}

// SweepExpiryWarnings notifies subscribers whose paid subscription expires in
// exactly `days` calendar days. A subscription gets at most one warning per
// day: the notification row itself is the dedup marker, so re-running the
// sweep after a process restart inserts nothing new. The 7-day and 3-day
// passes never match the same subscription on the same day.
func SweepExpiryWarnings(tx *gorm.DB, now time.Time, days int) error {
	today := truncateToDay(now)
	dayStart := today.AddDate(0, 0, days)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var subs []models.Subscription
	err := tx.Where("status = ? AND expires_at >= ? AND expires_at < ?",
		models.SubscriptionActive, dayStart, dayEnd).Find(&subs).Error
	if err != nil {
		return err
	}

	for _, sub := range subs {
		var sent int64
		err := tx.Model(&models.Notification{}).
			Where("user_id = ? AND type = ? AND target_ref = ? AND created_at >= ?",
				sub.UserID, models.NotifSubscriptionExpiring, sub.ID, today).
			Count(&sent).Error
		if err != nil {
			utils.LogError(err, "Error checking sent warnings in SweepExpiryWarnings")
			continue
		}
		if sent > 0 {
			continue
		}

		var creator models.User
		if err := tx.First(&creator, "id = ?", sub.CreatorID).Error; err != nil {
			utils.LogError(err, "Error loading creator for expiry warning")
			continue
		}
		if err := notify.CreateTx(tx, sub.UserID, models.NotifSubscriptionExpiring, sub.ID, models.MessageContext{
			ActorName: creator.UserName,
			DaysLeft:  days,
		}); err != nil {
			utils.LogError(err, "Error creating expiry warning notification")
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
