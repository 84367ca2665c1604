package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/bistro/internal/client"
	"github.com/vladislavdragonenkov/bistro/internal/notify"
)

// Config описывает настройки запуска виджета корзины.
type Config struct {
	// OrderEndpoint — адрес бэкенда; без пути дополняется /api/place-order.
	OrderEndpoint string
	// OrderTimeout ограничивает ожидание ответа на оформление заказа.
	OrderTimeout time.Duration
	// MetricsAddr: адрес HTTP-сервера /metrics и health checks, пустая строка выключает сервер.
	MetricsAddr string
	// NotifyDelay задаёт, через сколько скрывается уведомление.
	NotifyDelay time.Duration
}

// DefaultConfig возвращает базовые настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		OrderEndpoint: "http://localhost:5001",
		OrderTimeout:  client.DefaultTimeout,
		MetricsAddr:   ":9090",
		NotifyDelay:   notify.DefaultDismissDelay,
	}
}

// Validate проверяет конфигурацию перед запуском.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.OrderEndpoint) == "" {
		errs = append(errs, errors.New("order endpoint is required"))
	}
	if c.OrderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("order timeout must be > 0, got %s", c.OrderTimeout))
	}
	if c.NotifyDelay <= 0 {
		errs = append(errs, fmt.Errorf("notify delay must be > 0, got %s", c.NotifyDelay))
	}
	return errors.Join(errs...)
}
