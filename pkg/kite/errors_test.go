package kite

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyEnvelopeTypeWins(t *testing.T) {
	body := []byte(`{"status":"error","message":"Insufficient funds","error_type":"MarginException"}`)
	// Status says input error; the envelope's explicit type must win.
	apiErr := Classify(400, body)

	if apiErr.Type != ExceptionMargin {
		t.Errorf("Type = %s, want MarginException", apiErr.Type)
	}
	if apiErr.Message != "Insufficient funds" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Retryable {
		t.Error("margin error marked retryable")
	}
	if apiErr.RequiresReauth {
		t.Error("margin error marked as requiring reauth")
	}
}

func TestClassifyTokenExceptionRequiresReauth(t *testing.T) {
	body := []byte(`{"status":"error","message":"Token is invalid","error_type":"TokenException"}`)
	apiErr := Classify(403, body)

	if !apiErr.RequiresReauth {
		t.Error("TokenException did not set RequiresReauth")
	}
	if apiErr.Retryable {
		t.Error("TokenException marked retryable")
	}
}

func TestClassifyStatusFallbacks(t *testing.T) {
	tests := []struct {
		status    int
		wantType  ExceptionType
		retryable bool
	}{
		{400, ExceptionInput, false},
		{403, ExceptionToken, false},
		{404, ExceptionGeneral, false},
		{429, ExceptionNetwork, true},
		{500, ExceptionData, true},
		{502, ExceptionData, true},
		{503, ExceptionData, true},
	}
	for _, tt := range tests {
		apiErr := Classify(tt.status, []byte("not json"))
		if apiErr.Type != tt.wantType {
			t.Errorf("status %d: Type = %s, want %s", tt.status, apiErr.Type, tt.wantType)
		}
		if apiErr.Retryable != tt.retryable {
			t.Errorf("status %d: Retryable = %v, want %v", tt.status, apiErr.Retryable, tt.retryable)
		}
		if apiErr.StatusCode != tt.status {
			t.Errorf("status %d: StatusCode = %d", tt.status, apiErr.StatusCode)
		}
	}
}

func TestClassifyRateLimited(t *testing.T) {
	apiErr := Classify(429, []byte(`{"status":"error","message":"Too many requests","error_type":"NetworkException"}`))

	if !apiErr.RateLimited {
		t.Error("429 did not set RateLimited")
	}
	if !apiErr.Retryable {
		t.Error("429 not retryable")
	}
}

func TestClassifyRetryableBeyondTypeFor5xx(t *testing.T) {
	// A 503 carrying a non-transient type is still retryable: the status
	// signals a server-side fault.
	body := []byte(`{"status":"error","message":"down for maintenance","error_type":"GeneralException"}`)
	apiErr := Classify(503, body)

	if apiErr.Type != ExceptionGeneral {
		t.Errorf("Type = %s, want GeneralException", apiErr.Type)
	}
	if !apiErr.Retryable {
		t.Error("5xx with GeneralException not retryable")
	}
}

func TestClassifyUnknownTypePreserved(t *testing.T) {
	body := []byte(`{"status":"error","message":"something new","error_type":"FancyNewException"}`)
	apiErr := Classify(400, body)

	if string(apiErr.Type) != "FancyNewException" {
		t.Errorf("Type = %s, want the raw FancyNewException", apiErr.Type)
	}
	if apiErr.Type.known() {
		t.Error("unknown type reported as known")
	}
}

func TestClassifyTransport(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	apiErr := classifyTransport(cause)

	if apiErr.Type != ExceptionNetwork {
		t.Errorf("Type = %s, want NetworkException", apiErr.Type)
	}
	if !apiErr.Retryable {
		t.Error("transport failure not retryable")
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", apiErr.StatusCode)
	}
	if !errors.Is(apiErr, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	apiErr := &APIError{Type: ExceptionInput, StatusCode: 400, Message: "missing quantity"}
	msg := apiErr.Error()
	for _, want := range []string{"InputException", "400", "missing quantity"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	noStatus := &APIError{Type: ExceptionNetwork, Message: "timeout"}
	if strings.Contains(noStatus.Error(), "status") {
		t.Errorf("Error() without status = %q, should omit status", noStatus.Error())
	}
}

func TestAPIErrorAs(t *testing.T) {
	var err error = Classify(403, []byte(`{"error_type":"TokenException","message":"expired"}`))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("errors.As failed")
	}
	if !apiErr.RequiresReauth {
		t.Error("RequiresReauth lost through the error chain")
	}
}
