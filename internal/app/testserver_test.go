package app

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/bistro/internal/client"
	"github.com/vladislavdragonenkov/bistro/internal/domain"
)

// kitchenStub принимает заказы вместо бэкенда.
type kitchenStub struct {
	mu       sync.Mutex
	requests []domain.OrderRequest
	response string
	status   int
}

func newKitchenStub(t *testing.T, status int, response string) (*kitchenStub, *httptest.Server) {
	t.Helper()

	stub := &kitchenStub{response: response, status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != client.PlaceOrderPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req domain.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			stub.mu.Lock()
			stub.requests = append(stub.requests, req)
			stub.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stub.status)
		_, _ = w.Write([]byte(stub.response))
	}))
	t.Cleanup(srv.Close)
	return stub, srv
}

func (k *kitchenStub) Requests() []domain.OrderRequest {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]domain.OrderRequest(nil), k.requests...)
}

// findFreePort находит свободный порт для тестов.
func findFreePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}
