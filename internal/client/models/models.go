// Package models defines the canonical record shapes all client code
// consumes, independent of backend payload variations.
package models

import "encoding/json"

// Role is the backend-assigned authorization role of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity is the authenticated user's profile data cached client-side.
// It is owned exclusively by the session store: set on login or restore,
// destroyed on logout.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Approved bool   `json:"approved"`
}

// Session is an immutable snapshot of the session store's state.
// Invariant: Identity is non-nil iff Credential is non-empty.
// Loading is true only while the initial restore from persistence runs.
type Session struct {
	Identity   *Identity
	Credential string
	Loading    bool
}

// ShortLink is the canonical shape of one shortened URL.
type ShortLink struct {
	ID          string `json:"id"`
	OriginalURL string `json:"originalUrl"`
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	Clicks      int64  `json:"clicks"`
	CreatedAt   string `json:"createdAt"`
}

// UserStatus is the registration approval state of a pending user.
type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusRejected UserStatus = "rejected"
)

// PendingUser is one registration awaiting administrator action.
// pending -> approved and pending -> rejected are the only legal
// transitions; approved and rejected are terminal.
type PendingUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	CreatedAt string     `json:"createdAt"`
	Status    UserStatus `json:"status"`
}

// AnalyticsSnapshot is a read-only aggregate supplied entirely by the
// backend, keyed by (ShortCode, TimeRange). Data carries the raw payload
// for presentation; the typed fields are the small projection the client
// itself reads, zero when the backend omits them.
type AnalyticsSnapshot struct {
	ShortCode      string
	TimeRange      string
	TotalClicks    int64
	UniqueVisitors int64
	Data           json.RawMessage
}

// Profile is the account view returned by the profile endpoint.
type Profile struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	URLsCreated int64  `json:"urlsCreated"`
	TotalClicks int64  `json:"totalClicks"`
	MemberSince string `json:"memberSince"`
}
