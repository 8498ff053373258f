package error

import "errors"

// Alert email errors.
var (
	ErrAlertNotQueued      = errors.New("failed to queue budget alert email")
	ErrUnknownTemplate     = errors.New("unknown email template")
	ErrAlertEmailNotFound  = errors.New("alert email not found")
	ErrDeliveryRejected    = errors.New("email provider rejected the message")
	ErrDeliveryUnavailable = errors.New("email provider unavailable")
)

// EmailErrorCode follows the EML-XXYYYY scheme: 01 queueing, 02 delivery,
// 03 rendering.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed      EmailErrorCode = "EML-010001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-020003"
	ErrCodeInvalidTemplate       EmailErrorCode = "EML-030001"
)

var emailSentinels = map[EmailErrorCode]error{
	ErrCodeEmailQueueFailed:      ErrAlertNotQueued,
	ErrCodePermanentEmailFailure: ErrDeliveryRejected,
	ErrCodeTemporaryEmailFailure: ErrDeliveryUnavailable,
	ErrCodeInvalidTemplate:       ErrUnknownTemplate,
}

// EmailError is a failure to queue, render or deliver an alert email.
type EmailError struct {
	Code EmailErrorCode
	Err  error
}

func (e *EmailError) Error() string {
	msg := string(e.Code)
	if sentinel, ok := emailSentinels[e.Code]; ok {
		msg = sentinel.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the code's sentinel and the cause to errors.Is.
func (e *EmailError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := emailSentinels[e.Code]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewEmailError tags cause with code.
func NewEmailError(code EmailErrorCode, cause error) *EmailError {
	return &EmailError{Code: code, Err: cause}
}

// IsPermanent reports whether err is a delivery failure retrying cannot fix.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrDeliveryRejected) || errors.Is(err, ErrUnknownTemplate)
}
