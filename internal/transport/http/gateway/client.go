package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/dto"
	"github.com/murkotick/catalog-mirror/internal/metrics"
)

const (
	productsPath = "/products"
	productPath  = "/products/{id}"

	maxErrorBody = 512
)

// Client talks to the catalog backend over HTTP+JSON.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	record  func(method, endpoint string, statusCode int, d time.Duration)
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each request. Zero keeps the http.Client default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.client
			hc.Timeout = d
			c.client = &hc
		}
	}
}

// WithRateLimit throttles outgoing requests; limit <= 0 disables throttling.
func WithRateLimit(limit float64, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithoutMetrics stops reporting to the default Prometheus registry.
func WithoutMetrics() Option {
	return func(c *Client) {
		c.record = func(string, string, int, time.Duration) {}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
		record:  metrics.RecordGatewayRequest,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []dto.ProductDTO
	if err := c.do(ctx, "list products", http.MethodGet, productsPath, productsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &Error{Op: "list products", Method: http.MethodGet, Path: productsPath,
			Err: fmt.Errorf("%w: expected a JSON array", ErrMalformedPayload)}
	}
	for i, p := range out {
		if p.ID <= 0 {
			return nil, &Error{Op: "list products", Method: http.MethodGet, Path: productsPath,
				Err: fmt.Errorf("%w: element %d has no valid id", ErrMalformedPayload, i)}
		}
	}
	return dto.ToProducts(out), nil
}

func (c *Client) CreateProduct(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	const op = "create product"
	var out *dto.ProductDTO
	if err := c.do(ctx, op, http.MethodPost, productsPath, productsPath, dto.FromDraft(draft), &out); err != nil {
		return domain.Product{}, err
	}
	if out == nil || out.ID <= 0 {
		return domain.Product{}, &Error{Op: op, Method: http.MethodPost, Path: productsPath,
			Err: fmt.Errorf("%w: expected a product with an id", ErrMalformedPayload)}
	}
	return out.ToDomain(), nil
}

// UpdateProduct fails when the echo does not carry the submitted id.
func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "update product"
	path := idPath(p.ID)
	var out *dto.ProductDTO
	if err := c.do(ctx, op, http.MethodPut, path, productPath, dto.FromProduct(p), &out); err != nil {
		return domain.Product{}, err
	}
	if out == nil || out.ID != p.ID {
		return domain.Product{}, &Error{Op: op, Method: http.MethodPut, Path: path,
			Err: fmt.Errorf("%w: expected product %d in response", ErrMalformedPayload, p.ID)}
	}
	return out.ToDomain(), nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, "delete product", http.MethodDelete, idPath(id), productPath, nil, nil)
}

func idPath(id int64) string {
	return productsPath + "/" + strconv.FormatInt(id, 10)
}

// do performs one JSON round trip. endpoint is the route pattern used as metric label.
// A nil response target means the body is ignored.
func (c *Client) do(ctx context.Context, op, method, path, endpoint string, requestBody, response interface{}) (err error) {
	fail := func(status int, cause error) error {
		return &Error{Op: op, Method: method, Path: path, StatusCode: status, Err: cause}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, fmt.Errorf("rate limiter: %w", err))
		}
	}

	var body io.Reader
	if requestBody != nil {
		b, err := json.Marshal(requestBody)
		if err != nil {
			return fail(0, fmt.Errorf("failed to marshal request body: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	statusCode := 0
	defer func() {
		d := time.Since(start)
		c.record(method, endpoint, statusCode, d)
		if err != nil {
			c.log.Warn("catalog request failed", zap.String("op", op), zap.String("path", path), zap.Duration("took", d), zap.Error(err))
			return
		}
		c.log.Debug("catalog request", zap.String("op", op), zap.String("path", path), zap.Int("status", statusCode), zap.Duration("took", d))
	}()

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return fail(0, fmt.Errorf("request was cancelled: %w", ctx.Err()))
		default:
			return fail(0, fmt.Errorf("failed to execute request: %w", err))
		}
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			return fail(resp.StatusCode, fmt.Errorf("%w: %s", ErrUnexpectedStatus, msg))
		}
		return fail(resp.StatusCode, ErrUnexpectedStatus)
	}

	if response == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}
	if err := json.Unmarshal(raw, response); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	return nil
}
