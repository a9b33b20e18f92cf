package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestFaultWrapping(t *testing.T) {
	cause := errors.New("row missing")
	err := NewClientError("group is unknown", cause)

	if !IsClientError(err) {
		t.Fatal("expected a client error")
	}
	if IsInternalError(err) {
		t.Fatal("client error must not read as internal")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause must be reachable through Unwrap")
	}

	var f *Fault
	if !errors.As(err, &f) {
		t.Fatal("errors.As must find the fault")
	}
	if f.Code() != "client" {
		t.Fatalf("code = %s", f.Code())
	}
}

func TestFaultMessage(t *testing.T) {
	err := NewInternalError("fan-out failed", errors.New("network down"))
	want := "[InternalError] fan-out failed: network down"
	if err.Error() != want {
		t.Fatalf("message = %q, expected %q", err.Error(), want)
	}

	bare := &Fault{Type: ErrClient, Message: "bad payload"}
	if bare.Error() != "[ClientError] bad payload" {
		t.Fatalf("message = %q", bare.Error())
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load node: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("sentinel must match through wrapping")
	}
	if IsClientError(wrapped) || IsInternalError(wrapped) {
		t.Fatal("bare sentinel carries no fault classification")
	}
}
