package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Combo order-book domain error codes. These name the error kinds of
// the error-handling design: most are warn-and-skip, never fatal to the
// driver loop; only CodeInvalidLevel/CodeInvalidConfig are programming-
// contract violations and may be treated as fatal by a caller.
const (
	// TransportFailure: fetcher timeout, connection drop, 5xx, exhausted retries.
	CodeTransportFailure Code = "TRANSPORT_FAILURE"
	// MalformedPayload: normalizer saw a missing side, empty list, or auction_mode.
	CodeMalformedPayload Code = "MALFORMED_PAYLOAD"
	// PairUnavailable: synthesizer found no bridging component pairs.
	CodePairUnavailable Code = "PAIR_UNAVAILABLE"
	// VenueUnknown: catalog lookup missed a venue or pair.
	CodeVenueUnknown Code = "VENUE_UNKNOWN"
	// DepthExhausted: WAP traversal ran out of levels before qty was filled.
	// Not an error condition; carried as a Code so callers can log it without
	// treating it as a failure.
	CodeDepthExhausted Code = "DEPTH_EXHAUSTED"
	// SinkDecodeError: result file was unreadable/corrupt; overwritten.
	CodeSinkDecodeError Code = "SINK_DECODE_ERROR"
	// Programming-contract violations: the only fatal kinds.
	CodeInvalidLevel  Code = "INVALID_LEVEL"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)
