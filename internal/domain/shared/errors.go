package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyDeleted      = NewDomainError("ALREADY_DELETED", "Resource is already deleted")
	ErrNotDeleted          = NewDomainError("NOT_DELETED", "Resource is not deleted")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrIntegrityViolation  = NewDomainError("INTEGRITY_VIOLATION", "Resource has dependent records")
	ErrValidationFailed    = NewDomainError("VALIDATION_FAILED", "Payload validation failed")
	ErrTransactionFailed   = NewDomainError("TRANSACTION_FAILED", "Transaction failed and was rolled back")
	ErrRestoreTimeout      = NewDomainError("RESTORE_TIMEOUT", "Restore transaction timed out; safe to retry")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
