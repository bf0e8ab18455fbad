package capitalpool

import "errors"

var (
	// ErrEmptyName is returned when a pool is constructed with a blank name.
	ErrEmptyName = errors.New("capitalpool: name must not be empty")
	// ErrInsufficientOcean is returned when LockMCR is asked to lock more
	// than the pool's free capital.
	ErrInsufficientOcean = errors.New("capitalpool: requested amount exceeds ocean")
	// ErrUnknownProvider names a provider with no active balance. No Pool
	// method returns it: reads and redemptions treat an unknown provider's
	// balance as zero.
	ErrUnknownProvider = errors.New("capitalpool: unknown provider")
	// ErrInvalidAmount is returned when a deposit or redemption amount is
	// not positive.
	ErrInvalidAmount = errors.New("capitalpool: amount must be positive")
)
