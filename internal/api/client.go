package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// ErrServerUnavailable marks transport-level failures: the request never
// reached the server or the response body was not a valid envelope. It is
// distinct from *APIError so callers can tell "server said no" from "could
// not reach server".
var ErrServerUnavailable = errors.New("servidor no disponible")

// APIError is returned when the server answered with a non-2xx status. The
// message prefers whatever the server put in the envelope.
type APIError struct {
	StatusCode int
	Status     string // envelope status: "fail" or "error"
	Message    string
	Errors     []domain.FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// envelope is the uniform wrapper every endpoint responds with.
type envelope struct {
	Status  string              `json:"status"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

// Client talks to the sistema-ventas REST API. Every call is a fresh round
// trip: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client

	Clientes     *ClienteService
	Productos    *ProductoService
	Ingredientes *IngredienteService
	MetodosPago  *MetodoPagoService
	Ventas       *VentaService
	Dashboard    *DashboardService
}

// New builds a Client for the given base URL (e.g. http://localhost:3000/api).
func New(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	c.Clientes = &ClienteService{client: c}
	c.Productos = &ProductoService{client: c}
	c.Ingredientes = &IngredienteService{client: c}
	c.MetodosPago = &MetodoPagoService{client: c}
	c.Ventas = &VentaService{client: c}
	c.Dashboard = &DashboardService{client: c}
	return c
}

// do executes one request and decodes the envelope. On success the data
// field is unmarshalled into out (when out is non-nil and data is present).
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     env.Status,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, out)
}

func (c *Client) put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, nil, body, out)
}

func (c *Client) patch(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, nil, body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}
