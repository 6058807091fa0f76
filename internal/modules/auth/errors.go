package auth

import (
	"fmt"
	"net/http"
)

// Error is the single error shape of the auth context: a stable code, an
// HTTP status hint for the boundary layer, an optional structured context
// and an optional wrapped cause. Matching happens by code via errors.Is, so
// a contextualized copy still matches its sentinel.
type Error struct {
	Code    string
	Status  int
	Message string
	Context map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// With returns a copy carrying extra context; the sentinel itself stays
// immutable.
func (e *Error) With(ctx map[string]any) *Error {
	clone := *e
	clone.Context = ctx
	return &clone
}

var (
	ErrInvalidCredentials = &Error{
		Code:    "AUTH_INVALID_CREDENTIALS",
		Status:  http.StatusUnauthorized,
		Message: "invalid email or password",
	}

	// ErrRefreshTokenInvalidOrExpired deliberately covers missing, expired
	// and revoked tokens alike so callers cannot tell which one it was.
	ErrRefreshTokenInvalidOrExpired = &Error{
		Code:    "AUTH_REFRESH_TOKEN_INVALID_OR_EXPIRED",
		Status:  http.StatusUnauthorized,
		Message: "refresh token invalid or expired",
	}

	// ErrVerificationTokenInvalidOrExpired covers missing, expired and
	// already-consumed verification tokens alike.
	ErrVerificationTokenInvalidOrExpired = &Error{
		Code:    "AUTH_VERIFICATION_TOKEN_INVALID_OR_EXPIRED",
		Status:  http.StatusBadRequest,
		Message: "verification code invalid or expired",
	}

	// ErrVerificationCodeInvalid is the code-mismatch outcome, distinct from
	// a token that could not be resolved at all.
	ErrVerificationCodeInvalid = &Error{
		Code:    "AUTH_VERIFICATION_CODE_INVALID",
		Status:  http.StatusBadRequest,
		Message: "verification code invalid",
	}

	ErrAlreadyVerified = &Error{
		Code:    "AUTH_ALREADY_VERIFIED",
		Status:  http.StatusConflict,
		Message: "email already verified",
	}

	ErrNotPendingVerification = &Error{
		Code:    "AUTH_NOT_PENDING_VERIFICATION",
		Status:  http.StatusConflict,
		Message: "user is not pending verification",
	}

	ErrEmailSendFailed = &Error{
		Code:    "AUTH_EMAIL_SEND_FAILED",
		Status:  http.StatusBadGateway,
		Message: "verification email could not be sent",
	}

	ErrPersistenceFailure = &Error{
		Code:    "AUTH_PERSISTENCE_FAILURE",
		Status:  http.StatusInternalServerError,
		Message: "storage operation failed",
	}
)

// persistenceError wraps an unexpected storage error with the attempted
// operation and its input; the raw error never reaches end users.
func persistenceError(op string, input any, err error) *Error {
	return &Error{
		Code:    ErrPersistenceFailure.Code,
		Status:  ErrPersistenceFailure.Status,
		Message: ErrPersistenceFailure.Message,
		Context: map[string]any{"op": op, "input": input},
		Err:     err,
	}
}
