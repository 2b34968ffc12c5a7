package contextkeys

type contextKey string

const (
	// AuthUserKey holds the identity resolved by the auth middleware for the
	// current request. Always the user's current row from the store, not the
	// claims embedded in the token.
	AuthUserKey contextKey = "AuthUser"
)
