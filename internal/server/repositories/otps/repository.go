// Package otps is the ledger of one-time passcodes issued for email login.
package otps

import (
	"context"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	// Issue stores otp and retires every earlier unused code for the same email.
	Issue(ctx context.Context, otp *models.OTP) error
	// FindActive returns the newest code for email that is unused and unexpired at now.
	FindActive(ctx context.Context, email string, now time.Time) (*models.OTP, error)
	// MarkUsed flips the code to used if it is still active at now and reports whether it did.
	MarkUsed(ctx context.Context, id string, now time.Time) (bool, error)
	// DeleteExpired removes codes that expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
