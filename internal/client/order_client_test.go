package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func sampleRequest() domain.OrderRequest {
	req, err := domain.NewOrderRequest(
		domain.CheckoutDetails{Name: "Asha", Table: "5", Phone: "9876543210"},
		domain.Cart{{Name: "Butter Chicken", PriceMinor: 25000, Qty: 2}},
	)
	if err != nil {
		panic(err)
	}
	return req
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(loggerForTests()), WithHTTPClient(srv.Client())}, opts...)
	c, err := NewHTTPClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestPlaceOrder_Success(t *testing.T) {
	var got domain.OrderRequest
	var headers http.Header
	var method, path string
	var decodeErr error

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path, headers = r.Method, r.URL.Path, r.Header.Clone()
		decodeErr = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"order_id":42}`))
	})
	c.newKey = func() string { return "key-1" }

	result, err := c.PlaceOrder(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, domain.OrderID("42"), result.OrderID)

	require.NoError(t, decodeErr)
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, PlaceOrderPath, path)
	require.Equal(t, "application/json", headers.Get("Content-Type"))
	require.Equal(t, "key-1", headers.Get(idempotencyHeader))
	require.Equal(t, sampleRequest(), got)
}

func TestPlaceOrder_GeneratesIdempotencyKey(t *testing.T) {
	keys := make(chan string, 2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get(idempotencyHeader)
		_, _ = w.Write([]byte(`{"success":true,"order_id":"a1b2c3d4"}`))
	})

	_, err := c.PlaceOrder(context.Background(), sampleRequest())
	require.NoError(t, err)
	_, err = c.PlaceOrder(context.Background(), sampleRequest())
	require.NoError(t, err)

	first, second := <-keys, <-keys
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
}

func TestPlaceOrder_BackendRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Table occupied"}`))
	})

	result, err := c.PlaceOrder(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Table occupied", result.Message)
}

func TestPlaceOrder_UndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.PlaceOrder(context.Background(), sampleRequest())
	require.Error(t, err)
	require.True(t, domain.IsTransport(err))

	var transportErr *domain.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, "decode response", transportErr.Op)
}

func TestPlaceOrder_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	t.Cleanup(func() { close(release) })

	started := time.Now()
	_, err := c.PlaceOrder(context.Background(), sampleRequest())
	require.Error(t, err)
	require.True(t, domain.IsTransport(err))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(started), 5*time.Second)
}

func TestPlaceOrder_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, WithLogger(loggerForTests()))
	require.NoError(t, err)

	_, err = c.PlaceOrder(context.Background(), sampleRequest())
	require.True(t, domain.IsTransport(err))
}

func TestNewHTTPClient_Endpoint(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		want    string
		wantErr bool
	}{
		{name: "host only", base: "http://localhost:5001", want: "http://localhost:5001/api/place-order"},
		{name: "trailing slash", base: "http://localhost:5001/", want: "http://localhost:5001/api/place-order"},
		{name: "explicit path", base: "https://bistro.example/v2/orders", want: "https://bistro.example/v2/orders"},
		{name: "empty", base: "  ", wantErr: true},
		{name: "no scheme", base: "localhost:5001", wantErr: true},
		{name: "ftp", base: "ftp://bistro.example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewHTTPClient(tt.base)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, c.Endpoint())
		})
	}
}
