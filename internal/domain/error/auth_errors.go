package error

import "errors"

// Account and session errors.
var (
	ErrUserNotFound = errors.New("user not found")

	// ErrUnableToRegister hides whether the email already has an account.
	ErrUnableToRegister   = errors.New("unable to register with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("token is required")
	ErrWeakPassword       = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrRateLimited        = errors.New("too many attempts, try again later")
)

// AuthErrorCode follows the AUTH-XXYYYY scheme: 01 registration, 02 login,
// 03 token.
type AuthErrorCode string

const (
	ErrCodeUnableToRegister AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"

	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)

var authCodes = []struct {
	sentinel error
	code     AuthErrorCode
}{
	{ErrUnableToRegister, ErrCodeUnableToRegister},
	{ErrWeakPassword, ErrCodeWeakPassword},
	{ErrInvalidEmail, ErrCodeInvalidEmail},
	{ErrInvalidCredentials, ErrCodeInvalidCredentials},
	{ErrUserNotFound, ErrCodeInvalidCredentials},
	{ErrRateLimited, ErrCodeRateLimited},
	{ErrInvalidToken, ErrCodeInvalidToken},
	{ErrMissingToken, ErrCodeMissingToken},
}

// AuthError is an account or session failure safe to show to the client.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Registration reports whether the code belongs to the registration family.
func (c AuthErrorCode) Registration() bool {
	return len(c) >= 7 && c[5:7] == "01"
}

// AuthFailure wraps cause in an AuthError coded after the first sentinel it
// matches. The client-facing message is the sentinel's text, so causes can
// carry internal detail. It returns nil when cause matches no sentinel.
func AuthFailure(cause error) *AuthError {
	for _, entry := range authCodes {
		if errors.Is(cause, entry.sentinel) {
			return &AuthError{Code: entry.code, Message: publicMessage(entry.sentinel), Err: cause}
		}
	}
	return nil
}

// Unknown accounts must read exactly like a wrong password.
func publicMessage(sentinel error) string {
	if sentinel == ErrUserNotFound {
		return ErrInvalidCredentials.Error()
	}
	return sentinel.Error()
}
