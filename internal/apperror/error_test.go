package apperror

import (
	"errors"
	"testing"
)

func TestNewUsesCodeMessage(t *testing.T) {
	err := New(CodePairUnavailable)
	if err.Code != CodePairUnavailable {
		t.Errorf("Code = %q, want %q", err.Code, CodePairUnavailable)
	}
	if err.Message == "" {
		t.Error("Message should default from the messages table")
	}
}

func TestNewFallsBackToCodeAsMessage(t *testing.T) {
	err := New(Code("SOME_UNMAPPED_CODE"))
	if err.Message != "SOME_UNMAPPED_CODE" {
		t.Errorf("Message = %q, want the code itself when unmapped", err.Message)
	}
}

func TestWithCauseIsUnwrappable(t *testing.T) {
	cause := errors.New("boom")
	err := New(CodeTransportFailure, WithCause(cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through to the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the original cause")
	}
}

func TestWithContextIsRecorded(t *testing.T) {
	err := New(CodeMalformedPayload, WithContext("missing asks side"))
	if err.Context != "missing asks side" {
		t.Errorf("Context = %q, want the value passed to WithContext", err.Context)
	}
	if err.Error() == "" {
		t.Error("Error() should render a non-empty message")
	}
}

func TestIsComparesByCode(t *testing.T) {
	a := New(CodeVenueUnknown)
	b := New(CodeVenueUnknown, WithContext("different context"))
	c := New(CodePairUnavailable)

	if !errors.Is(a, b) {
		t.Error("two AppErrors with the same code should compare equal via errors.Is")
	}
	if errors.Is(a, c) {
		t.Error("AppErrors with different codes should not compare equal")
	}
}

func TestToResponseOmitsEmptyOptionalFields(t *testing.T) {
	err := New(CodeInternalError)
	resp := err.ToResponse()
	body, ok := resp["error"].(map[string]interface{})
	if !ok {
		t.Fatal("ToResponse should nest fields under an \"error\" key")
	}
	if _, present := body["context"]; present {
		t.Error("ToResponse should omit context when it was never set")
	}
}

func TestWithTraceIDChains(t *testing.T) {
	err := New(CodeInternalError).WithTraceID("trace-123")
	if err.TraceID != "trace-123" {
		t.Errorf("TraceID = %q, want trace-123", err.TraceID)
	}
}
