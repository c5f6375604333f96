package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestClient_ListTransactions(t *testing.T) {
	t.Run("decodes the bare array response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/transactions" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"category":"revenu","amount":"100","description":"","date":"2024-01-10T00:00:00Z"}]`))
		}))
		defer server.Close()

		c := New(server.URL, nil)
		transactions, err := c.ListTransactions(context.Background(), 0, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(transactions))
		}
		if !transactions[0].Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("unexpected amount: %s", transactions[0].Amount)
		}
	})

	t.Run("sends year and month as query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("year"); got != "2024" {
				t.Errorf("unexpected year: %q", got)
			}
			if got := r.URL.Query().Get("month"); got != "3" {
				t.Errorf("unexpected month: %q", got)
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		c := New(server.URL, nil)
		if _, err := c.ListTransactions(context.Background(), 2024, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries 5xx responses up to two times", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		c := New(server.URL, nil)
		_, err := c.ListTransactions(context.Background(), 0, 0)
		if err != nil {
			t.Fatalf("expected success after retries, got %v", err)
		}
		if calls.Load() != 3 {
			t.Errorf("expected 3 attempts, got %d", calls.Load())
		}
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := New(server.URL, nil)
		_, err := c.ListTransactions(context.Background(), 0, 0)
		if err == nil {
			t.Fatal("expected an error")
		}
		if calls.Load() != 3 {
			t.Errorf("expected 3 attempts (1 + 2 retries), got %d", calls.Load())
		}
	})

	t.Run("never replays a create on 5xx", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := New(server.URL, nil)
		_, err := c.CreateTransaction(context.Background(), "revenu", decimal.NewFromInt(10), "", time.Time{})
		if err == nil {
			t.Fatal("expected an error")
		}
		if calls.Load() != 1 {
			t.Errorf("expected a single attempt for a create, got %d", calls.Load())
		}
	})

	t.Run("never retries a 4xx response", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"bad"}}`))
		}))
		defer server.Close()

		c := New(server.URL, nil)
		_, err := c.CreateTransaction(context.Background(), "salary", decimal.NewFromInt(10), "", time.Time{})
		if err == nil {
			t.Fatal("expected an error")
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %v", err, err)
		}
		if apiErr.Code != "INVALID_INPUT" {
			t.Errorf("unexpected code: %q", apiErr.Code)
		}
		if calls.Load() != 1 {
			t.Errorf("expected exactly 1 attempt, got %d", calls.Load())
		}
	})
}

func TestClient_InFlightDedup(t *testing.T) {
	t.Run("coalesces duplicate approve triggers", func(t *testing.T) {
		release := make(chan struct{})
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			<-release
			_, _ = w.Write([]byte(`{"id":2,"email":"b@clinic.test","is_approved":true}`))
		}))
		defer server.Close()

		c := New(server.URL, nil)

		var wg sync.WaitGroup
		wg.Add(1)
		firstErr := make(chan error, 1)
		go func() {
			defer wg.Done()
			_, err := c.ApproveUser(context.Background(), 2)
			firstErr <- err
		}()

		// Wait until the first call is holding the in-flight slot.
		for calls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}

		_, err := c.ApproveUser(context.Background(), 2)
		if !errors.Is(err, ErrRequestInFlight) {
			t.Errorf("expected ErrRequestInFlight, got %v", err)
		}

		close(release)
		wg.Wait()
		if err := <-firstErr; err != nil {
			t.Errorf("first call failed: %v", err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected exactly 1 request, got %d", calls.Load())
		}
	})

	t.Run("allows a different id while one is in flight", func(t *testing.T) {
		release := make(chan struct{})
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				<-release
			}
			_, _ = w.Write([]byte(`{"message":"User deleted"}`))
		}))
		defer server.Close()

		c := New(server.URL, nil)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.DeleteUser(context.Background(), 1)
		}()

		for calls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}

		if err := c.DeleteUser(context.Background(), 2); err != nil {
			t.Errorf("unexpected error for a different id: %v", err)
		}

		close(release)
		wg.Wait()
	})

	t.Run("allows a retry after the first call settles", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"User deleted"}`))
		}))
		defer server.Close()

		c := New(server.URL, nil)
		if err := c.DeleteUser(context.Background(), 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := c.DeleteUser(context.Background(), 3); err != nil {
			t.Fatalf("expected the slot to be released, got %v", err)
		}
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("stores the token for subsequent requests", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/admins/login":
				_, _ = w.Write([]byte(`{"message":"Login successful","token":"test-token","admin":{"id":1,"email":"root@clinic.test"}}`))
			case "/users/pending":
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("unexpected authorization header: %q", got)
				}
				_, _ = w.Write([]byte(`[]`))
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))
		defer server.Close()

		c := New(server.URL, nil)
		if err := c.AdminLogin(context.Background(), "root@clinic.test", "password123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.ListPendingUsers(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestClient_SetTokenConcurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.SetToken("rotated-token")
		}()
		go func() {
			defer wg.Done()
			_, _ = c.ListPendingUsers(context.Background())
		}()
	}
	wg.Wait()
}

func TestClient_GetSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"revenue_total":"160","expense_total":"40","net_balance":"120","revenue_count":2,"expense_count":1}`))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	summary, err := c.GetSummary(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.NetBalance.Equal(decimal.NewFromInt(120)) {
		t.Errorf("unexpected net balance: %s", summary.NetBalance)
	}
	if summary.RevenueCount != 2 {
		t.Errorf("unexpected revenue count: %d", summary.RevenueCount)
	}
}
