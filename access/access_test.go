package access

import (
	"testing"
	"time"

	"fanloop-backend/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func activeSub(tier models.SubscriptionTier, expiresAt *time.Time) *models.Subscription {
	return &models.Subscription{
		Status:    models.SubscriptionActive,
		Tier:      tier,
		ExpiresAt: expiresAt,
	}
}

func TestEvaluate_AnonymousViewer(t *testing.T) {
	d := Evaluate(nil, "owner", models.VisibilityPublic, nil, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyLoginRequired, d.Reason)

	d = Evaluate(&Viewer{}, "owner", models.VisibilityPublic, nil, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyLoginRequired, d.Reason)
}

func TestEvaluate_OwnerAlwaysAllowed(t *testing.T) {
	d := Evaluate(&Viewer{ID: "owner", Role: models.UserRole}, "owner", models.VisibilitySubscribersOnly, nil, now)
	assert.True(t, d.Allowed)
}

func TestEvaluate_AdminAlwaysAllowed(t *testing.T) {
	d := Evaluate(&Viewer{ID: "someone", Role: models.AdminRole}, "owner", models.VisibilitySubscribersOnly, nil, now)
	assert.True(t, d.Allowed)
}

func TestEvaluate_NoSubscription(t *testing.T) {
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilityPublic, nil, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenySubscriptionRequired, d.Reason)
}

func TestEvaluate_ExpiredSubscription(t *testing.T) {
	sub := activeSub(models.TierPaid, datePtr(2025, 6, 14))
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilityPublic, sub, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyExpired, d.Reason)
}

func TestEvaluate_ExpiringTodayStillValid(t *testing.T) {
	// Expiry is compared on calendar dates: the whole expiry day is covered.
	sub := activeSub(models.TierPaid, datePtr(2025, 6, 15))
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilitySubscribersOnly, sub, now)
	assert.True(t, d.Allowed)
}

func TestEvaluate_CanceledFreeSubscription(t *testing.T) {
	sub := &models.Subscription{
		Status:    models.SubscriptionCanceled,
		Tier:      models.TierFree,
		ExpiresAt: nil,
	}
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilityPublic, sub, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyExpired, d.Reason)
}

func TestEvaluate_CanceledPaidKeepsAccessUntilExpiry(t *testing.T) {
	// A canceled paid subscription rides out its paid period.
	sub := &models.Subscription{
		Status:    models.SubscriptionCanceled,
		Tier:      models.TierPaid,
		ExpiresAt: datePtr(2025, 7, 1),
	}
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilitySubscribersOnly, sub, now)
	assert.True(t, d.Allowed)
}

func TestEvaluate_FreeTierOnGatedPost(t *testing.T) {
	sub := activeSub(models.TierFree, nil)
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilitySubscribersOnly, sub, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyPaidSubscriptionRequired, d.Reason)
}

func TestEvaluate_FreeTierOnPublicPost(t *testing.T) {
	sub := activeSub(models.TierFree, nil)
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilityPublic, sub, now)
	assert.True(t, d.Allowed)
}

func TestEvaluate_PaidTierOnGatedPost(t *testing.T) {
	sub := activeSub(models.TierPaid, datePtr(2025, 7, 15))
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilitySubscribersOnly, sub, now)
	assert.True(t, d.Allowed)
}

func TestEvaluate_ExpiryWinsOverTier(t *testing.T) {
	// An expired paid subscription reports EXPIRED, not the tier error.
	sub := activeSub(models.TierPaid, datePtr(2025, 1, 1))
	d := Evaluate(&Viewer{ID: "viewer", Role: models.UserRole}, "owner", models.VisibilitySubscribersOnly, sub, now)
	assert.Equal(t, DenyExpired, d.Reason)
}
