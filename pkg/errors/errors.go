package errors

import "errors"

// Token sentinels shared by the JWT helpers and the auth middleware.
var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenExpired = errors.New("token has expired")
)
