package ports

import "context"

// LoginThrottle tracks failed login attempts per email. Implementations
// should degrade open: a throttle backend outage must not lock anyone
// out of login.
type LoginThrottle interface {
	// TooMany reports whether the email has exhausted its attempt budget.
	TooMany(ctx context.Context, email string) (bool, error)
	// Fail records one failed attempt.
	Fail(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
