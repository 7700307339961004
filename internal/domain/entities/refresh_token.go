package entities

import "time"

// RefreshToken is an opaque, single-use credential persisted for revocation.
// Multiple valid tokens per user may coexist; rotation revokes the used one.
type RefreshToken struct {
	ID        uint      `json:"id"`
	Token     string    `json:"-"`
	UserID    uint      `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Valid reports whether the token can still be exchanged.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
