package models

import "time"

// OTP is a stored one-time passcode. Only the bcrypt hash of the code is kept.
type OTP struct {
	ID        string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// ActiveAt reports whether the code can still be consumed at t.
func (o *OTP) ActiveAt(t time.Time) bool {
	return !o.Used && t.Before(o.ExpiresAt)
}
