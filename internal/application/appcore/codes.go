package appcore

// Code identifies a class of request failure. Codes are part of the contract
// with the HTTP boundary (status mapping) and with the retry policy
// (transient/terminal classification).
type Code string

// Failure codes.
const (
	// CodeValidation marks a malformed or rule-violating request.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeUnauthorized marks a request with missing or unusable credentials.
	CodeUnauthorized Code = "UNAUTHORIZED_ACCESS"

	// CodeIdentityMismatch marks a request whose target identity does not
	// match the authenticated caller.
	CodeIdentityMismatch Code = "IDENTITY_MISMATCH"

	// CodeOwnershipViolation marks an access to a resource the caller does
	// not own.
	CodeOwnershipViolation Code = "OWNERSHIP_VIOLATION"

	// CodeNotFound marks a missing resource.
	CodeNotFound Code = "RESOURCE_NOT_FOUND"

	// CodeDuplicate marks a uniqueness conflict.
	CodeDuplicate Code = "DUPLICATE_RESOURCE"

	// CodeInactive marks an operation on an archived or disabled resource.
	CodeInactive Code = "RESOURCE_INACTIVE"

	// CodeSessionHijacked marks a session observed under a different user
	// than the one that established it.
	CodeSessionHijacked Code = "SESSION_HIJACKED"

	// CodeRetryExhausted marks a transient dependency failure that survived
	// every retry attempt.
	CodeRetryExhausted Code = "RETRY_EXHAUSTED"

	// CodeConnection marks a suspected-temporary infrastructure failure.
	CodeConnection Code = "CONNECTION_ERROR"

	// CodeInternal marks an uncategorized failure caught at a boundary.
	CodeInternal Code = "INTERNAL_ERROR"
)
