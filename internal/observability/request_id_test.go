package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDIsUniqueUUID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewRequestID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected valid UUID, got %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("request id %q issued twice", id)
		}
		seen[id] = true
	}
}

func TestRequestIDFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{name: "stored", ctx: ContextWithRequestID(context.Background(), "abc-123"), want: "abc-123"},
		{name: "overwritten", ctx: ContextWithRequestID(ContextWithRequestID(context.Background(), "first"), "second"), want: "second"},
		{name: "missing", ctx: context.Background(), want: ""},
		{name: "wrong type", ctx: context.WithValue(context.Background(), RequestIDKey, 42), want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RequestIDFromContext(tc.ctx); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRequestIDHeaderIsCanonical(t *testing.T) {
	if got := http.CanonicalHeaderKey(RequestIDHeader); got != RequestIDHeader {
		t.Fatalf("expected canonical header name, %q canonicalizes to %q", RequestIDHeader, got)
	}
}

func TestRequestIDHeaderMatchesContextPerRequest(t *testing.T) {
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(RequestIDFromContext(r.Context())))
	}))

	var prev string
	for i := range 3 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calculator/sessions", nil))

		header := w.Result().Header.Get(RequestIDHeader)
		if header == "" {
			t.Fatalf("request %d: expected %s header", i, RequestIDHeader)
		}
		if body := w.Body.String(); body != header {
			t.Fatalf("request %d: context id %q does not match header %q", i, body, header)
		}
		if header == prev {
			t.Fatalf("request %d: reused request id %q", i, header)
		}
		prev = header
	}
}
