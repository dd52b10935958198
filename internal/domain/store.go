package domain

import "time"

// StoreStatus is the administrative state of a store. Only the
// administrator mutates it; billing never touches it.
type StoreStatus string

const (
	StoreStatusActive StoreStatus = "active"
	StoreStatusBanned StoreStatus = "banned"
)

// Plan is a store's subscription tier. It controls catalog visibility
// limits, not administrative state.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
	PlanDiamond Plan = "diamond"
)

// Visibility is the classified public state of a storefront.
type Visibility string

const (
	VisibilityActive Visibility = "active"
	VisibilityBanned Visibility = "banned"
	VisibilityLocked Visibility = "locked"
)

// FreeListingLimit caps the storefront listing for free-plan stores.
const FreeListingLimit = 5

type Store struct {
	ID                 string      `json:"id"`
	Slug               string      `json:"slug"`
	Name               string      `json:"name"`
	Status             StoreStatus `json:"status"`
	Plan               Plan        `json:"plan"`
	SubscriptionExpiry *time.Time  `json:"subscriptionExpiry,omitempty"`
	ViewCount          int64       `json:"viewCount"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// Expired reports whether the store's subscription lapsed strictly
// before now. A store with no expiry set never expires.
func (s Store) Expired(now time.Time) bool {
	return s.SubscriptionExpiry != nil && s.SubscriptionExpiry.Before(now)
}

// ClassifyStore resolves a store's public visibility. A ban is an
// administrative override and wins over any subscription state, so it
// is checked first; an expired subscription locks the storefront;
// anything else is active.
func ClassifyStore(s Store, now time.Time) Visibility {
	switch s.Status {
	case StoreStatusBanned:
		return VisibilityBanned
	case StoreStatusActive:
		if s.Expired(now) {
			return VisibilityLocked
		}
		return VisibilityActive
	}
	// Unknown statuses are treated as banned rather than leaking a
	// catalog for a state the platform does not recognize.
	return VisibilityBanned
}
