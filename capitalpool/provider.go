package capitalpool

// Provider is an opaque liquidity-provider identifier. Equality is the
// only operation the accounting core requires of it; callers are free to
// use wallet addresses, account UUIDs, or any other stable string.
type Provider string
