package apperrors

// ErrorCode is the machine-readable error tag carried in responses.
type ErrorCode string

const (
	// System and unknown failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeIOFailure            ErrorCode = "IO_FAILURE"

	// Generic business-logic codes
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeNotEditable        ErrorCode = "NOT_EDITABLE"
	CodeInvalidPolicyState ErrorCode = "INVALID_POLICY_STATE"
	CodeInvalidStatus      ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation   ErrorCode = "INVALID_OPERATION"
)
