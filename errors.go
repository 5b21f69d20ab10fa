package main

import "errors"

// Error kinds surfaced by the auth, token and document services. Handlers map
// these to HTTP statuses with errors.Is; nothing is retried server-side.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrWeakPassword is returned when a password fails the configured policy.
	ErrWeakPassword = errors.New("password does not meet policy")

	// ErrTokenExpired means the access token's signature checked out but its
	// expiry has passed.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid covers any other access token fault: bad signature,
	// malformed string, missing subject.
	ErrTokenInvalid = errors.New("access token invalid")
	// ErrRefreshTokenInvalid means no live row matches the presented refresh
	// token (unknown or already revoked).
	ErrRefreshTokenInvalid = errors.New("refresh token invalid or revoked")
	// ErrRefreshTokenExpired means the row exists but its expiry has passed;
	// the row is revoked as a side effect of the failed verification.
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrNotFound is returned for any resource lookup that misses, whether the
	// id does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFileType rejects uploads whose declared media type is not
	// PDF, before any processing cost is incurred.
	ErrUnsupportedFileType = errors.New("only PDF uploads are supported")
	// ErrExtractionFailed means the PDF text could not be read.
	ErrExtractionFailed = errors.New("could not extract text from PDF")
	// ErrAnalysisFailed means the AI engine call failed or returned a
	// malformed result. Distinct from ErrExtractionFailed so a caller can tell
	// an unreadable upload apart from an unavailable assistant.
	ErrAnalysisFailed = errors.New("document analysis failed")
)
