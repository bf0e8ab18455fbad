package protocol

import "errors"

var (
	// ErrRiskModuleNotFound is returned when new_policy references an
	// unregistered risk module name.
	ErrRiskModuleNotFound = errors.New("protocol: risk module not found")
	// ErrPoolNotFound is returned by lookups against an unregistered pool
	// name.
	ErrPoolNotFound = errors.New("protocol: pool not found")
	// ErrInvalidPolicy is returned when policy construction rejects its
	// inputs (premium >= payout, expiration <= start) or the constructed
	// policy's interest_rate is not strictly positive.
	ErrInvalidPolicy = errors.New("protocol: invalid policy")
	// ErrInsufficientCapital is returned when the total ocean across every
	// eligible pool is below the policy's MCR.
	ErrInsufficientCapital = errors.New("protocol: insufficient capital")
	// ErrEmptyName is returned when registering a risk module or pool
	// under a blank name.
	ErrEmptyName = errors.New("protocol: name must not be empty")
	// ErrClockNotAdvanceable is returned by FastForwardTime when the
	// protocol was constructed with a clock that cannot be manually
	// advanced (i.e. not a *clock.ManualClock).
	ErrClockNotAdvanceable = errors.New("protocol: clock does not support manual advancement")
)
