// Package catalogclient is a Go client for the product catalog API. Create and
// update requests are validated locally with the same rules the server applies,
// so invalid input never leaves the process.
package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog/internal/models"
	"catalog/internal/validation"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []validation.FieldError
	Detail     string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, f := range e.Errors {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// FieldErrors returns the per-field messages carried by err, from local
// validation or from a 400 answer.
func FieldErrors(err error) map[string]string {
	if verr, ok := validation.AsErrors(err); ok {
		return verr.Messages()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		return (&validation.Errors{Fields: apiErr.Errors}).Messages()
	}
	return nil
}

// envelope is the uniform response body of the API.
type envelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Count   int                     `json:"count"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	Pages   int                     `json:"pages"`
	Data    json.RawMessage         `json:"data"`
	Errors  []validation.FieldError `json:"errors"`
	Error   string                  `json:"error"`
}

// ListOptions filters and pages a product listing. Zero values are omitted.
type ListOptions struct {
	Category string
	Name     string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Category != "" {
		v.Set("category", o.Category)
	}
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	if o.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*o.MinPrice, 'f', -1, 64))
	}
	if o.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*o.MaxPrice, 'f', -1, 64))
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	return v
}

// ProductList is one page of a listing.
type ProductList struct {
	Products []models.Product
	Count    int
	Total    int64
	Page     int
	Pages    int
}

// Client talks to the catalog API.
type Client struct {
	baseURL   string
	http      *resty.Client
	validator *validation.Validator
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.http.SetAuthToken(token)
		}
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).
			SetBaseURL(c.baseURL).
			SetHeader("Accept", "application/json")
	}
}

// New creates a client for the API at baseURL, e.g. http://localhost:3000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/") + "/api",
		validator: validation.New(),
	}
	c.http = resty.New().
		SetBaseURL(c.baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts fetches one page of active products.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*ProductList, error) {
	env, err := c.do(c.http.R().SetContext(ctx).SetQueryParamsFromValues(opts.values()), http.MethodGet, "/products")
	if err != nil {
		return nil, err
	}
	list := &ProductList{Count: env.Count, Total: env.Total, Page: env.Page, Pages: env.Pages}
	if err := decodeData(env, &list.Products); err != nil {
		return nil, err
	}
	return list, nil
}

// GetProduct fetches a product by id, including soft-deleted ones.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	env, err := c.do(c.http.R().SetContext(ctx).SetPathParam("id", id), http.MethodGet, "/products/{id}")
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

// CreateProduct validates req locally and creates the product.
func (c *Client) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if verr := c.validator.ValidateCreate(&req); verr != nil {
		return nil, verr
	}
	env, err := c.do(c.http.R().SetContext(ctx).SetBody(req), http.MethodPost, "/products")
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

// UpdateProduct validates the fields present in req and applies them.
func (c *Client) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	if verr := c.validator.ValidateUpdate(&req); verr != nil {
		return nil, verr
	}
	env, err := c.do(c.http.R().SetContext(ctx).SetPathParam("id", id).SetBody(req), http.MethodPut, "/products/{id}")
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

// DeleteProduct soft-deletes a product and returns it with Active false.
func (c *Client) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	env, err := c.do(c.http.R().SetContext(ctx).SetPathParam("id", id), http.MethodDelete, "/products/{id}")
	if err != nil {
		return nil, err
	}
	return decodeProduct(env)
}

func (c *Client) do(req *resty.Request, method, path string) (*envelope, error) {
	var env envelope
	resp, err := req.SetResult(&env).SetError(&env).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    msg,
			Errors:     env.Errors,
			Detail:     env.Error,
		}
	}
	return &env, nil
}

func decodeProduct(env *envelope) (*models.Product, error) {
	var p models.Product
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeData(env *envelope, v any) error {
	if len(env.Data) == 0 {
		return errors.New("response carries no data")
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
