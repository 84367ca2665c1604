package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistro/internal/app"
	"github.com/vladislavdragonenkov/bistro/internal/version"
)

const (
	envOrderEndpoint = "BISTRO_ORDER_ENDPOINT"
	envOrderTimeout  = "BISTRO_ORDER_TIMEOUT"
	envMetricsAddr   = "BISTRO_METRICS_ADDR"
	envNotifyDelay   = "BISTRO_NOTIFY_DELAY"
	envLogLevel      = "BISTRO_LOG_LEVEL"
)

type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования.
func setupLogger(lookup envLookup) []string {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)

	raw, ok := lookup(envLogLevel)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	level, err := log.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return []string{fmt.Sprintf("%s: %v, using info", envLogLevel, err)}
	}
	log.SetLevel(level)
	return nil
}

// readConfigFromEnv собирает конфигурацию из окружения. Некорректные значения
// не останавливают запуск: остаётся значение по умолчанию и пишется предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookup(envOrderEndpoint); ok && strings.TrimSpace(v) != "" {
		cfg.OrderEndpoint = strings.TrimSpace(v)
	}
	// Пустое значение выключает сервер метрик.
	if v, ok := lookup(envMetricsAddr); ok {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}

	positive := func(d time.Duration) bool { return d > 0 }
	if v, ok := lookup(envOrderTimeout); ok {
		if d, err := parseDuration(v, positive, "must be > 0"); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envOrderTimeout, err))
		} else {
			cfg.OrderTimeout = d
		}
	}
	if v, ok := lookup(envNotifyDelay); ok {
		if d, err := parseDuration(v, positive, "must be > 0"); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envNotifyDelay, err))
		} else {
			cfg.NotifyDelay = d
		}
	}

	return cfg, warnings
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(value) {
		return 0, fmt.Errorf("%s, got %s", rule, value)
	}
	return value, nil
}

func main() {
	warnings := setupLogger(os.LookupEnv)
	cfg, cfgWarnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range append(warnings, cfgWarnings...) {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"order_endpoint": cfg.OrderEndpoint,
		"order_timeout":  cfg.OrderTimeout,
		"metrics_addr":   cfg.MetricsAddr,
		"version":        version.GetVersion(),
	}).Info("запускаем корзину bistro")

	if err := app.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("корзина bistro остановлена")
}
