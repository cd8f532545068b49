package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSupplier represents a supplier in the API
type TestSupplier struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Address  string        `json:"address"`
	Phone    string        `json:"phone"`
	Invoices []TestInvoice `json:"invoices,omitempty"`
}

// TestItem represents a catalog item in the API
type TestItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// TestInvoiceLine represents an invoice line joined with its item
type TestInvoiceLine struct {
	ID        string   `json:"id"`
	Quantity  int      `json:"quantity"`
	InvoiceID string   `json:"invoiceId"`
	ItemID    string   `json:"itemId"`
	Item      TestItem `json:"item"`
}

// TestInvoice represents an invoice joined with its supplier and lines
type TestInvoice struct {
	ID            string            `json:"id"`
	InvoiceNumber string            `json:"invoiceNumber"`
	Amount        string            `json:"amount"`
	SupplierID    string            `json:"supplierId"`
	CreatedAt     string            `json:"createdAt"`
	Supplier      TestSupplier      `json:"supplier"`
	InvoiceLines  []TestInvoiceLine `json:"invoiceLines"`
}

// TestErrorResponse represents the error envelope
type TestErrorResponse struct {
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()

	// Configure base URL - use environment variable or default
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}

	c := &apiClient{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}

	resp, err := c.http.Get(baseURL + "/items")
	if err != nil {
		t.Skipf("API not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()

	return c
}

func (c *apiClient) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request")
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err, "Failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), "Failed to decode response: %s", string(raw))
	}
	return resp.StatusCode
}

// TestLedgerAPI walks a supplier, an item and an invoice through the API
func TestLedgerAPI(t *testing.T) {
	c := newAPIClient(t)
	suffix := time.Now().Format("20060102150405.000")

	var supplier TestSupplier
	var item TestItem
	var invoice TestInvoice

	// 1. Create a supplier
	t.Run("CreateSupplier", func(t *testing.T) {
		status := c.do(t, http.MethodPost, "/suppliers", map[string]any{
			"name":    "Integration Supplier " + suffix,
			"address": "1 Test Street",
			"phone":   "+212600000000",
		}, &supplier)
		require.Equal(t, http.StatusCreated, status)
		assert.NotEmpty(t, supplier.ID)
	})

	// 2. Create an item, price sent as a number
	t.Run("CreateItem", func(t *testing.T) {
		status := c.do(t, http.MethodPost, "/items", map[string]any{
			"name":  "Integration Item " + suffix,
			"price": 12.5,
		}, &item)
		require.Equal(t, http.StatusCreated, status)
		assert.NotEmpty(t, item.ID)
	})

	// 3. Exact lookup
	t.Run("LookupItem", func(t *testing.T) {
		var found TestItem
		path := fmt.Sprintf("/items/lookup?name=%s&price=%s", url.QueryEscape(item.Name), url.QueryEscape(item.Price))
		status := c.do(t, http.MethodGet, path, nil, &found)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, item.ID, found.ID)
	})

	// 4. Create an invoice
	t.Run("CreateInvoice", func(t *testing.T) {
		status := c.do(t, http.MethodPost, "/invoices", map[string]any{
			"invoice": map[string]any{
				"invoiceNumber": "INT-" + suffix,
				"amount":        "25.00",
				"supplierId":    supplier.ID,
			},
			"invoiceLines": []map[string]any{
				{"quantity": 2, "itemId": item.ID},
			},
		}, &invoice)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, supplier.ID, invoice.Supplier.ID)
		require.Len(t, invoice.InvoiceLines, 1)
		assert.Equal(t, item.ID, invoice.InvoiceLines[0].Item.ID)
	})

	// 5. Read it back
	t.Run("GetInvoice", func(t *testing.T) {
		var got TestInvoice
		status := c.do(t, http.MethodGet, "/invoices/"+invoice.ID, nil, &got)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, invoice.InvoiceNumber, got.InvoiceNumber)
	})

	// 6. The supplier list shows the invoice under its supplier
	t.Run("ListSuppliers", func(t *testing.T) {
		var suppliers []TestSupplier
		status := c.do(t, http.MethodGet, "/suppliers", nil, &suppliers)
		require.Equal(t, http.StatusOK, status)

		for _, s := range suppliers {
			if s.ID == supplier.ID {
				require.Len(t, s.Invoices, 1)
				assert.Equal(t, invoice.ID, s.Invoices[0].ID)
				return
			}
		}
		t.Fatalf("supplier %s missing from list", supplier.ID)
	})
}

// TestErrorEnvelope checks the shared error shape
func TestErrorEnvelope(t *testing.T) {
	c := newAPIClient(t)

	t.Run("Validation", func(t *testing.T) {
		var errResp TestErrorResponse
		status := c.do(t, http.MethodPost, "/invoices", map[string]any{
			"invoice":      map[string]any{"invoiceNumber": "", "amount": "-1", "supplierId": ""},
			"invoiceLines": []map[string]any{},
		}, &errResp)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "validation", errResp.Kind)
		assert.GreaterOrEqual(t, len(errResp.Details), 3)
	})

	t.Run("NotFound", func(t *testing.T) {
		var errResp TestErrorResponse
		status := c.do(t, http.MethodGet, "/invoices/does-not-exist", nil, &errResp)
		require.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", errResp.Kind)
	})
}
