package apperror

// ErrorCode is the coarse category of an error. It maps onto the "error"
// field of API responses.
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInternalError    ErrorCode = "INTERNAL_SERVER_ERROR"
)

// BusinessCode is the precise reason behind an error. Clients branch on it.
type BusinessCode string

const (
	BusinessCodeGeneral BusinessCode = "GENERAL"

	// Input
	BusinessCodeMissingField  BusinessCode = "MISSING_FIELD"
	BusinessCodeInvalidFormat BusinessCode = "INVALID_FORMAT"
	BusinessCodeInvalidEmail  BusinessCode = "INVALID_EMAIL"

	// Identity
	BusinessCodeMissingIdentity BusinessCode = "MISSING_IDENTITY"

	// Posts
	BusinessCodePostNotFound  BusinessCode = "POST_NOT_FOUND"
	BusinessCodeNotPostAuthor BusinessCode = "NOT_POST_AUTHOR"

	// Users
	BusinessCodeUserNotFound      BusinessCode = "USER_NOT_FOUND"
	BusinessCodeUserAlreadyExists BusinessCode = "USER_ALREADY_EXISTS"

	// Persistence
	BusinessCodeStorageFailure BusinessCode = "STORAGE_FAILURE"
)
