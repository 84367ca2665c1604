package client

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

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
)

const (
	// PlaceOrderPath — фиксированный путь эндпоинта оформления заказа.
	PlaceOrderPath = "/api/place-order"
	// DefaultTimeout ограничивает один запрос, чтобы зависший бэкенд не оставлял пользователя без ответа.
	DefaultTimeout = 10 * time.Second

	idempotencyHeader = "Idempotency-Key"
	maxResponseBytes  = 1 << 20
)

// Option настраивает HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient подменяет транспорт (например, в тестах).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger задаёт логгер клиента.
func WithLogger(logger *log.Entry) Option {
	return func(h *HTTPClient) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// HTTPClient отправляет OrderRequest JSON-ом на бэкенд ресторана.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   *log.Entry
	newKey   func() string
}

// NewHTTPClient создаёт клиента для бэкенда по адресу baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	endpoint, err := resolveEndpoint(baseURL)
	if err != nil {
		return nil, err
	}

	c := &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{},
		timeout:  DefaultTimeout,
		logger:   log.WithField("component", "order-client"),
		newKey:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint возвращает полный URL эндпоинта.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// PlaceOrder выполняет один POST. Ответ с JSON-телом возвращается как есть при любом
// HTTP-статусе; сеть, таймаут и непарсибельное тело дают *domain.TransportError.
func (c *HTTPClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.OrderResult{}, &domain.TransportError{Op: "encode request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.OrderResult{}, &domain.TransportError{Op: "build request", Err: err}
	}
	key := c.newKey()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(idempotencyHeader, key)

	logger := c.logger.WithFields(log.Fields{
		"endpoint":        c.endpoint,
		"idempotency_key": key,
		"lines":           len(req.Cart),
	})
	logger.Debug("sending order")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("no response within %s: %w", c.timeout, err)
		}
		return domain.OrderResult{}, &domain.TransportError{Op: "post", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.OrderResult{}, &domain.TransportError{Op: "read response", Err: err}
	}

	var result domain.OrderResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.OrderResult{}, &domain.TransportError{
			Op:  "decode response",
			Err: fmt.Errorf("status %d: %w", resp.StatusCode, err),
		}
	}

	logger.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"success":  result.Success,
		"order_id": result.OrderID,
	}).Debug("order response received")

	return result, nil
}

func resolveEndpoint(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", errors.New("order endpoint is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse order endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("order endpoint must be http(s), got %q", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("order endpoint has no host: %q", baseURL)
	}
	// Базовый адрес без пути дополняем стандартным путём эндпоинта.
	if u.Path == "" || u.Path == "/" {
		u.Path = PlaceOrderPath
	}
	return u.String(), nil
}

var _ domain.OrderSubmitter = (*HTTPClient)(nil)
