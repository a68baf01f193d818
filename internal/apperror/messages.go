package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	CodeTransportFailure: "Venue depth request failed after retries",
	CodeMalformedPayload: "Venue depth payload could not be normalized",
	CodePairUnavailable:  "No component pairs found to synthesize the requested pair",
	CodeVenueUnknown:     "Venue or pair not present in the catalog",
	CodeDepthExhausted:   "WAP traversal consumed fewer levels than requested",
	CodeSinkDecodeError:  "Result sink file was unreadable and was overwritten",
	CodeInvalidLevel:     "Level violates the book's sort or positivity invariants",
	CodeInvalidConfig:    "Configuration failed validation",
}
