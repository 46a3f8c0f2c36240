package net_test

import (
	"net/http"
	"testing"

	perr "donormatch/internal/platform/errors"
	pnet "donormatch/internal/platform/net"
)

func TestOK(t *testing.T) {
	reqID := "req-1"
	data := map[string]any{"x": 1}

	status, w := pnet.OK(data, reqID)

	if status != http.StatusOK {
		t.Fatalf("status %d want %d", status, http.StatusOK)
	}
	if w.StatusCode != http.StatusOK || w.Status != http.StatusText(http.StatusOK) {
		t.Fatalf("wire status mismatch: %+v", w)
	}
	if w.RequestID != reqID {
		t.Fatalf("req id %q want %q", w.RequestID, reqID)
	}
	if got, ok := w.Data.(map[string]any)["x"]; !ok || got != 1 {
		t.Fatalf("data mismatch: %+v", w.Data)
	}
}

func TestNoContent(t *testing.T) {
	reqID := "req-2"

	status, w := pnet.NoContent(reqID)

	if status != http.StatusNoContent {
		t.Fatalf("status %d want %d", status, http.StatusNoContent)
	}
	if w.StatusCode != http.StatusNoContent || w.Status != http.StatusText(http.StatusNoContent) {
		t.Fatalf("wire status mismatch: %+v", w)
	}
	if w.Data != nil {
		t.Fatalf("no content must carry no data: %+v", w.Data)
	}
}

func TestErrorEnvelope(t *testing.T) {
	reqID := "req-3"

	status, w := pnet.Error(perr.NotFoundf("no donor"), reqID)

	if status != http.StatusNotFound {
		t.Fatalf("status %d want %d", status, http.StatusNotFound)
	}
	if w.Code != perr.ErrorCodeNotFound || w.Error != "no donor" {
		t.Fatalf("wire error mismatch: %+v", w)
	}
	if w.RequestID != reqID {
		t.Fatalf("req id %q want %q", w.RequestID, reqID)
	}
}

func TestErrorNilIsOK(t *testing.T) {
	status, w := pnet.Error(nil, "req-4")

	if status != http.StatusOK || w.Error != "" {
		t.Fatalf("nil error must be 200, got %d %+v", status, w)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	ctx := pnet.WithRequest(r.Context(), "req-5")
	if got := pnet.RequestID(ctx); got != "req-5" {
		t.Fatalf("req id %q want %q", got, "req-5")
	}
	if got := pnet.RequestID(r.Context()); got != "" {
		t.Fatalf("bare context must have no id, got %q", got)
	}
}
