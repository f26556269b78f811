package token

import "errors"

var (
	// ErrInvalidToken indicates the token failed signature, expiry or claim validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmptySecret is returned when constructing a Signer without a secret.
	ErrEmptySecret = errors.New("signing secret can not be empty")

	// ErrInvalidTTL is returned when constructing a Signer with a non-positive TTL.
	ErrInvalidTTL = errors.New("token ttl must be greater than zero")
)
