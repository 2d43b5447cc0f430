// Package access decides whether a viewer may see a piece of gated content.
// Evaluation is a pure function of current state and must be re-run per
// request: subscription state changes underneath via payments and scheduled
// sweeps, so decisions are never cached.
package access

import (
	"time"

	"fanloop-backend/models"
)

type DenyReason string

const (
	DenyLoginRequired            DenyReason = "LOGIN_REQUIRED"
	DenySubscriptionRequired     DenyReason = "SUBSCRIPTION_REQUIRED"
	DenyExpired                  DenyReason = "EXPIRED"
	DenyPaidSubscriptionRequired DenyReason = "PAID_SUBSCRIPTION_REQUIRED"
)

// Viewer is the authenticated identity, nil for anonymous requests.
type Viewer struct {
	ID   string
	Role models.Role
}

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(r DenyReason) Decision {
	return Decision{Reason: r}
}

// Evaluate applies the access rules in order, first match wins:
// anonymous viewers are rejected, owners and admins bypass everything,
// then the subscription edge decides. sub is the Subscription row for
// (viewer, owner), nil when none exists.
func Evaluate(viewer *Viewer, ownerID string, visibility models.PostVisibility, sub *models.Subscription, now time.Time) Decision {
	if viewer == nil || viewer.ID == "" {
		return deny(DenyLoginRequired)
	}
	if viewer.ID == ownerID {
		return allow()
	}
	if viewer.Role == models.AdminRole {
		return allow()
	}
	if sub == nil {
		return deny(DenySubscriptionRequired)
	}
	if sub.ExpiresAt != nil && sub.ExpiresAt.Before(truncateToDay(now)) {
		return deny(DenyExpired)
	}
	// A free-tier subscription never carries a date; an explicit cancel on it
	// behaves exactly like an expired one.
	if sub.ExpiresAt == nil && sub.Status == models.SubscriptionCanceled {
		return deny(DenyExpired)
	}
	if visibility == models.VisibilitySubscribersOnly && sub.Tier != models.TierPaid {
		return deny(DenyPaidSubscriptionRequired)
	}
	return allow()
}

// Expiry is compared on calendar dates, not instants: a subscription expiring
// today is still valid for the whole day.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
