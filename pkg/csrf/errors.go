package csrf

import "errors"

var (
	ErrSecretRequired = errors.New("csrf: signing secret is required")
	ErrMissingSecret  = errors.New("csrf: secret cookie missing or invalid")
	ErrMissingToken   = errors.New("csrf: token header missing")
	ErrInvalidToken   = errors.New("csrf: invalid token")
	ErrTokenExpired   = errors.New("csrf: token expired")
)
