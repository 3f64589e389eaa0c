package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	logx "homeworkbot/pkg/logx"
)

func TestClientFetchOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "OAuth secret-token" {
			t.Errorf("Authorization = %q, want %q", got, "OAuth secret-token")
		}
		if got := r.URL.Query().Get("from_date"); got != "42" {
			t.Errorf("from_date = %q, want %q", got, "42")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks": [], "current_date": 100}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret-token"}, logx.Nop())
	raw, err := c.FetchStatuses(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchStatuses error: %v", err)
	}

	if _, err := ValidateResponse(raw); !errors.Is(err, ErrNoStatusChange) {
		t.Fatalf("validate error = %v, want %v", err, ErrNoStatusChange)
	}
}

func TestClientStatusClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		code int
		want error
	}{
		{name: "internal error", code: http.StatusInternalServerError, want: ErrEndpointServer},
		{name: "not found", code: http.StatusNotFound, want: ErrEndpointRequest},
		{name: "unavailable", code: http.StatusServiceUnavailable, want: ErrEndpointRequest},
		{name: "unauthorized", code: http.StatusUnauthorized, want: ErrEndpointRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "t"}, logx.Nop())
			_, err := c.FetchStatuses(context.Background(), 0)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "t"}, logx.Nop())
	_, err := c.FetchStatuses(context.Background(), 0)
	if !errors.Is(err, ErrEndpointUnreachable) {
		t.Fatalf("error = %v, want %v", err, ErrEndpointUnreachable)
	}
}

func TestClientNonObjectBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "t"}, logx.Nop())
	_, err := c.FetchStatuses(context.Background(), 0)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want %v", err, ErrMalformedResponse)
	}
}
