package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/floor/internal/floor"
)

const maxResponseBytes = 1 << 20

// Client implements floor.Backend over the operational HTTP API. Monetary
// values cross this boundary as decimal strings, never binary floats.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     apt.Logger

	mu    sync.RWMutex
	token string

	// OnAuthExpired runs once per 401 so the app can cascade the local
	// logout. The failed request itself still returns its *Error.
	OnAuthExpired func()
}

func NewClient(baseURL string, logger apt.Logger) *Client {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// SetToken installs the bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request/response pair and unwraps the envelope into out.
// Every failure comes back as *Error so call sites stay uniform.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Code: "ENCODE", Message: err.Error()}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Code: "REQUEST", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &Error{Code: "TRANSPORT", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Code: "TRANSPORT", Message: err.Error()}
	}

	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnAuthExpired != nil {
			c.OnAuthExpired()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parseErr == nil && env.Error != nil && env.Error.Message != "" {
			return env.Error
		}
		return &Error{Code: "HTTP", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	if parseErr != nil {
		return &Error{Code: "DECODE", Message: "invalid server response"}
	}
	if env.Error != nil && !env.OK {
		return env.Error
	}
	if !env.OK || env.Data == nil {
		return &Error{Code: "DECODE", Message: "invalid server response"}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Code: "DECODE", Message: "invalid server response"}
	}
	return nil
}

func (c *Client) FetchOverview(ctx context.Context) ([]floor.OverviewRow, error) {
	var rows []floor.OverviewRow
	if err := c.do(ctx, http.MethodGet, "/api/operational/overview", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) FetchMenu(ctx context.Context) ([]floor.MenuCategory, error) {
	var categories []floor.MenuCategory
	if err := c.do(ctx, http.MethodGet, "/api/operational/menu", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) FetchWaiters(ctx context.Context) ([]floor.Waiter, error) {
	var waiters []floor.Waiter
	if err := c.do(ctx, http.MethodGet, "/api/operational/waiters", nil, &waiters); err != nil {
		return nil, err
	}
	return waiters, nil
}

func (c *Client) SubmitOrder(ctx context.Context, tableID uuid.UUID, req floor.OrderRequest) (floor.OrderReceipt, error) {
	var receipt floor.OrderReceipt
	path := "/api/operational/tables/" + tableID.String() + "/orders"
	if err := c.do(ctx, http.MethodPost, path, req, &receipt); err != nil {
		return floor.OrderReceipt{}, err
	}
	return receipt, nil
}

func (c *Client) FetchComandaDetail(ctx context.Context, id uuid.UUID) (*floor.ComandaDetail, error) {
	var detail floor.ComandaDetail
	path := "/api/operational/comandas/" + id.String()
	if err := c.do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CloseComanda(ctx context.Context, id uuid.UUID) (*floor.ComandaClose, error) {
	var closed floor.ComandaClose
	path := "/api/operational/comandas/" + id.String() + "/close"
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &closed); err != nil {
		return nil, err
	}
	return &closed, nil
}

func (c *Client) FetchDayComandas(ctx context.Context) ([]floor.DayComandaRow, error) {
	var rows []floor.DayComandaRow
	if err := c.do(ctx, http.MethodGet, "/api/operational/day/comandas", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) FetchPendingPrintJobs(ctx context.Context) ([]floor.PrintJob, error) {
	var jobs []floor.PrintJob
	if err := c.do(ctx, http.MethodGet, "/api/operational/print-jobs/pending", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) MarkJobPrinted(ctx context.Context, id uuid.UUID) (*floor.PrintJobUpdate, error) {
	var update floor.PrintJobUpdate
	path := "/api/operational/print-jobs/" + id.String() + "/printed"
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// Logout invalidates the session server-side. Stateless backend: local
// cleanup proceeds even when this fails.
func (c *Client) Logout(ctx context.Context) error {
	var result struct {
		LoggedOut bool `json:"loggedOut"`
	}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", struct{}{}, &result)
}
