package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
	Details    []model.ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return fmt.Sprintf("api error %d (%s): %s [%s]", e.StatusCode, e.Kind, e.Message, strings.Join(parts, "; "))
}

// IsNotFound reports whether the API answered with a not_found envelope
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client talks to the bookkeeping API. BaseURL includes the /api prefix.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSuppliers fetches every supplier with its invoices
func (c *Client) ListSuppliers(ctx context.Context) ([]domain.SupplierWithInvoices, error) {
	var out []domain.SupplierWithInvoices
	if err := c.do(ctx, http.MethodGet, "/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSupplier creates a supplier
func (c *Client) CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error) {
	body := model.CreateSupplierRequest{Name: input.Name, Address: input.Address, Phone: input.Phone}
	var out domain.Supplier
	if err := c.do(ctx, http.MethodPost, "/suppliers", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListItems fetches the whole catalog
func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	var out []domain.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchItems filters the catalog by name fragment and maximum price.
// Empty arguments are left out of the query.
func (c *Client) SearchItems(ctx context.Context, name, maxPrice string) ([]domain.Item, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}
	if maxPrice != "" {
		query.Set("price", maxPrice)
	}
	var out []domain.Item
	if err := c.do(ctx, http.MethodGet, "/items/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupItem finds the item with exactly this name and price
func (c *Client) LookupItem(ctx context.Context, name, price string) (*domain.Item, error) {
	query := url.Values{"name": {name}, "price": {price}}
	var out domain.Item
	if err := c.do(ctx, http.MethodGet, "/items/lookup", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateItem creates a catalog item
func (c *Client) CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error) {
	body := model.CreateItemRequest{Name: input.Name, Price: model.DecimalText(input.Price)}
	var out domain.Item
	if err := c.do(ctx, http.MethodPost, "/items", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvoices fetches every invoice with its supplier and lines
func (c *Client) ListInvoices(ctx context.Context) ([]domain.InvoiceWithLines, error) {
	var out []domain.InvoiceWithLines
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInvoice fetches one invoice
func (c *Client) GetInvoice(ctx context.Context, id string) (*domain.InvoiceWithLines, error) {
	var out domain.InvoiceWithLines
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvoice creates an invoice together with its lines
func (c *Client) CreateInvoice(ctx context.Context, invoice domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.InvoiceWithLines, error) {
	body := model.CreateInvoiceRequest{
		Invoice: model.InvoiceHeaderRequest{
			InvoiceNumber: invoice.InvoiceNumber,
			Amount:        model.DecimalText(invoice.Amount),
			SupplierID:    invoice.SupplierID,
		},
		InvoiceLines: make([]model.InvoiceLineRequest, 0, len(lines)),
	}
	for _, l := range lines {
		body.InvoiceLines = append(body.InvoiceLines, model.InvoiceLineRequest{Quantity: l.Quantity, ItemID: l.ItemID})
	}

	var out domain.InvoiceWithLines
	if err := c.do(ctx, http.MethodPost, "/invoices", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary fetches the aggregate report
func (c *Client) Summary(ctx context.Context) (*model.ReportSummaryResponse, error) {
	var out model.ReportSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/reports/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope model.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		apiErr.Kind = model.KindInternal
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	apiErr.Kind = envelope.Kind
	apiErr.Message = envelope.Message
	apiErr.Details = envelope.Details
	return apiErr
}
