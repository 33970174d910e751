package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "invalid season: %s", "20x5")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "invalid season: 20x5" {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}
	if !strings.Contains(err.Error(), string(ErrCodeInvalidInput)) {
		t.Errorf("Error() should contain the code: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch %s", "http://example.com")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match the cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should contain the cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotRegistered, "unknown entrypoint")

	if !Is(err, ErrCodeNotRegistered) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf
	wrapped := fmt.Errorf("dispatch: %w", err)
	if !Is(wrapped, ErrCodeNotRegistered) {
		t.Error("Is should unwrap the error chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDuplicateKey, "dup")); got != ErrCodeDuplicateKey {
		t.Errorf("expected %s, got %s", ErrCodeDuplicateKey, got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidSeason, "season must be a 4-digit year")
	if msg := UserMessage(err); strings.Contains(msg, string(ErrCodeInvalidSeason)) {
		t.Errorf("UserMessage should strip the code prefix: %s", msg)
	}
	if msg := UserMessage(stderrors.New("plain")); msg != "plain" {
		t.Errorf("UserMessage should pass plain errors through: %s", msg)
	}
}

func TestUpstreamError(t *testing.T) {
	err := &UpstreamError{StatusCode: 503, URL: "http://upstream/x.json"}

	if !strings.Contains(err.Error(), "503") {
		t.Errorf("Error() should contain the status code: %s", err.Error())
	}
	if err.Code() != ErrCodeUpstreamStatus {
		t.Errorf("unexpected code: %s", err.Code())
	}

	var uerr *UpstreamError
	if !stderrors.As(fmt.Errorf("fetch: %w", err), &uerr) {
		t.Fatal("errors.As should find the UpstreamError in the chain")
	}
	if uerr.StatusCode != 503 {
		t.Errorf("expected status 503, got %d", uerr.StatusCode)
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	if !verr.Empty() {
		t.Error("new ValidationError should be empty")
	}

	verr.Add("season", "required field is missing").Add("round", "must be a positive integer")

	if verr.Empty() {
		t.Error("ValidationError with fields should not be empty")
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(verr.Fields))
	}

	// Every offending field is enumerated
	msg := verr.Error()
	if !strings.Contains(msg, "season") || !strings.Contains(msg, "round") {
		t.Errorf("Error() should enumerate all fields: %s", msg)
	}
	if verr.Code() != ErrCodeInvalidInput {
		t.Errorf("unexpected code: %s", verr.Code())
	}
}
