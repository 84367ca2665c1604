package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistro/internal/client"
	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/menu"
	"github.com/vladislavdragonenkov/bistro/internal/metrics"
	"github.com/vladislavdragonenkov/bistro/internal/storage/memory"
)

// Dependencies содержит все зависимости виджета.
type Dependencies struct {
	Repo      domain.CartRepository
	Submitter domain.OrderSubmitter
	Metrics   *metrics.CartMetrics
	Menu      *menu.Catalog
	Logger    *log.Entry
}

// NewDependencies создаёт и инициализирует зависимости по конфигурации.
// registerer == nil означает глобальный реестр Prometheus.
func NewDependencies(cfg Config, logger *log.Entry, registerer prometheus.Registerer) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	orderClient, err := client.NewHTTPClient(
		cfg.OrderEndpoint,
		client.WithTimeout(cfg.OrderTimeout),
		client.WithLogger(logger.WithField("layer", "http-client")),
	)
	if err != nil {
		return nil, fmt.Errorf("create order client: %w", err)
	}

	return &Dependencies{
		Repo:      memory.NewCartRepository(),
		Submitter: orderClient,
		Metrics:   metrics.NewCartMetricsWithRegisterer(registerer),
		Menu:      menu.Default(),
		Logger:    logger,
	}, nil
}
