package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrAIUpstream_PropagatesStatus(t *testing.T) {
	err := ErrAIUpstream(http.StatusTooManyRequests, fmt.Errorf("rate limited"))
	if err.HTTPCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", err.HTTPCode)
	}
	if err.Code != ErrorCode_AI_UPSTREAM_FAILED {
		t.Fatalf("unexpected code %v", err.Code)
	}
}

func TestErrAIUpstream_ClampsOutOfRangeStatus(t *testing.T) {
	for _, status := range []int{0, 200, 302, 600, -1} {
		err := ErrAIUpstream(status, fmt.Errorf("boom"))
		if err.HTTPCode != http.StatusBadGateway {
			t.Fatalf("status %d: expected 502, got %d", status, err.HTTPCode)
		}
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrMeetingSaveFailed(cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the wrapped cause")
	}

	var appErr AppError
	if !stderrors.As(error(err), &appErr) {
		t.Fatal("expected errors.As to match AppError")
	}
	if appErr.Code != ErrorCode_MEETING_SAVE_FAILED {
		t.Fatalf("unexpected code %v", appErr.Code)
	}
}

func TestErrMeetingNotFound_CarriesDetail(t *testing.T) {
	err := ErrMeetingNotFound("abc-123")
	if err.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", err.HTTPCode)
	}
	if err.Details["meeting_id"] != "abc-123" {
		t.Fatalf("missing meeting_id detail: %v", err.Details)
	}
}
