package auth

import "errors"

// Closed set of failure kinds the session state machine can produce.
// Handlers map these to status codes with errors.Is; the service never
// swallows them.
var (
	// ErrEmailExists is returned by SignUp when the email is already registered.
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionInvalidated means a structurally valid refresh token no
	// longer matches the stored one (already rotated or revoked).
	ErrSessionInvalidated = errors.New("session invalidated")

	// ErrAccountMissing means the token subject no longer exists.
	ErrAccountMissing = errors.New("account not found")
)

// Token verification failures. All four surface as unauthorized at the
// transport boundary but stay distinct for diagnostics.
var (
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenNotYetValid     = errors.New("token not valid yet")
	ErrTokenIssuedAtInvalid = errors.New("token issued in the future")
)
