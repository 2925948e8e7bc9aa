package usecase

// Error codes surfaced in the HTTP error envelope.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeBusinessRule    = "BUSINESS_RULE_VIOLATION"
	CodeTokenUsed       = "TOKEN_USED"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodePaymentRequired = "PAYMENT_REQUIRED"
	CodeDatabase        = "DATABASE_ERROR"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// DomainError is a business failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure; callers only see a generic
// message, the detail stays in the server logs.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
