package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds is shared by unknown-email and wrong-password
	// failures so callers cannot tell which one happened.
	TextCodeInvalidCreds    = "INVALID_CREDENTIALS"
	TextCodeAccountDisabled = "ACCOUNT_DISABLED"
	TextCodeRememberMe      = "REMEMBER_ME_INVALID"
	TextCodeUnauthenticated = "AUTHENTICATION_REQUIRED"
	TextCodeForbidden       = "ACCESS_DENIED"
)

// ErrBadCredentials is the undifferentiated login failure: wrong password
// and unknown email are observationally identical.
var ErrBadCredentials = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountDisabled marks an INACTIVE principal. The login page renders it
// with the same generic banner as ErrBadCredentials.
var ErrAccountDisabled = goerrors.New("account is disabled", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountDisabled).
	WithCode(goerrors.CodeUnauthorized)

// ErrRememberMeInvalid covers every remember-me validation failure:
// bad signature, expired token, vanished or disabled principal. The guard
// treats it as "no cookie" and continues anonymously.
var ErrRememberMeInvalid = goerrors.New("remember-me token invalid or expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeRememberMe).
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionInvalid covers unparsable or expired session tokens.
var ErrSessionInvalid = goerrors.New("session token invalid or expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthenticated is the matcher's deny reason for anonymous requests
// to non-public paths.
var ErrUnauthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrForbidden is the matcher's deny reason for authenticated subjects
// missing the required authority.
var ErrForbidden = goerrors.New("access denied", goerrors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(goerrors.CodeForbidden)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the hasher's verification failure,
// covering both a true mismatch and a malformed stored digest.
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)
