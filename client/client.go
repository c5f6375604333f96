// Package client provides an HTTP client for the ClinFin API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the API's transaction resource.
type Transaction struct {
	ID          uint            `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Activity mirrors the API's activity resource, including the derived status.
type Activity struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// User mirrors the API's public user view.
type User struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	IsApproved bool   `json:"is_approved"`
}

// Summary mirrors /reports/summary.
type Summary struct {
	RevenueTotal decimal.Decimal `json:"revenue_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	RevenueCount int             `json:"revenue_count"`
	ExpenseCount int             `json:"expense_count"`
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Code)
}

// ErrRequestInFlight reports that an identical approve or delete call is
// already running; the duplicate trigger was dropped.
var ErrRequestInFlight = errors.New("identical request already in flight")

const (
	maxRetries   = 2
	retryBackoff = 200 * time.Millisecond
)

// Client communicates with the ClinFin API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a new API client. httpClient may be nil, in which case a
// client with a 10 second timeout is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		inFlight:   make(map[string]struct{}),
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// idempotent reports whether a request with the given method can be replayed
// without side effects. POST creates are excluded: a create that timed out may
// still have committed, and replaying it would duplicate the record.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// retryable reports whether the request should be attempted again. Timeouts,
// connection resets and 5xx responses are transient; any 4xx is final.
func retryable(statusCode int, err error) bool {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}
		return strings.Contains(err.Error(), "connection reset")
	}
	return statusCode >= 500
}

// do executes the request, retrying transient failures of idempotent calls up
// to maxRetries times with linear backoff, and decodes a 2xx body into out
// when non-nil. Non-idempotent calls get a single attempt.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	retries := maxRetries
	if !idempotent(method) {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		var reqBody *bytes.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		} else {
			reqBody = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := c.currentToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if retryable(0, err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("%s %s: %w", method, path, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			defer func() { _ = resp.Body.Close() }()
			if out == nil {
				return nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}
			return nil
		}

		apiErr := decodeAPIError(resp)
		_ = resp.Body.Close()
		if retryable(resp.StatusCode, nil) {
			lastErr = apiErr
			continue
		}
		return apiErr
	}

	return fmt.Errorf("%s %s: giving up after %d attempts: %w", method, path, retries+1, lastErr)
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// dedup runs fn unless an identical (op, id) call is already in flight, in
// which case it returns ErrRequestInFlight without issuing a request.
func (c *Client) dedup(op string, id uint, fn func() error) error {
	key := fmt.Sprintf("%s:%d", op, id)

	c.mu.Lock()
	if _, running := c.inFlight[key]; running {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	c.inFlight[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, key)
		c.mu.Unlock()
	}()

	return fn()
}

// ListTransactions fetches transactions, optionally filtered by year/month
// (zero means no filter).
func (c *Client) ListTransactions(ctx context.Context, year, month int) ([]Transaction, error) {
	path := "/transactions"
	if year != 0 {
		path = fmt.Sprintf("%s?year=%d", path, year)
		if month != 0 {
			path = fmt.Sprintf("%s&month=%d", path, month)
		}
	}
	var transactions []Transaction
	if err := c.do(ctx, http.MethodGet, path, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateTransaction creates a transaction. Date may be zero to let the
// server default it to now.
func (c *Client) CreateTransaction(ctx context.Context, category string, amount decimal.Decimal, description string, date time.Time) (*Transaction, error) {
	body := map[string]interface{}{
		"category":    category,
		"amount":      amount,
		"description": description,
	}
	if !date.IsZero() {
		body["date"] = date.Format(time.RFC3339)
	}
	var created Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteTransaction deletes a transaction by id, coalescing duplicate
// triggers for the same id.
func (c *Client) DeleteTransaction(ctx context.Context, id uint) error {
	return c.dedup("delete-transaction", id, func() error {
		return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil)
	})
}

// ListActivities fetches activities filtered by status ("all" for no filter).
func (c *Client) ListActivities(ctx context.Context, status string) ([]Activity, error) {
	path := "/activites"
	if status != "" && status != "all" {
		path += "?status=" + status
	}
	var activities []Activity
	if err := c.do(ctx, http.MethodGet, path, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Login authenticates a user and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var result struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result.User, nil
}

// AdminLogin authenticates an administrator and stores the returned token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var result struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/admins/login", body, &result); err != nil {
		return err
	}
	c.SetToken(result.Token)
	return nil
}

// ListPendingUsers fetches accounts awaiting approval. Requires an admin token.
func (c *Client) ListPendingUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users/pending", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveUser approves a pending account, coalescing duplicate triggers for
// the same id. Requires an admin token.
func (c *Client) ApproveUser(ctx context.Context, id uint) (*User, error) {
	var approved User
	err := c.dedup("approve-user", id, func() error {
		return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/approve", id), nil, &approved)
	})
	if err != nil {
		return nil, err
	}
	return &approved, nil
}

// DeleteUser deletes a user account, coalescing duplicate triggers for the
// same id. Requires an admin token.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.dedup("delete-user", id, func() error {
		return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
	})
}

// GetSummary fetches overall totals, optionally restricted to a year/month.
func (c *Client) GetSummary(ctx context.Context, year, month int) (*Summary, error) {
	path := "/reports/summary"
	if year != 0 {
		path = fmt.Sprintf("%s?year=%d", path, year)
		if month != 0 {
			path = fmt.Sprintf("%s&month=%d", path, month)
		}
	}
	var summary Summary
	if err := c.do(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
