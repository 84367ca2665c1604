package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistro/internal/controller"
	healthcheck "github.com/vladislavdragonenkov/bistro/internal/health"
	"github.com/vladislavdragonenkov/bistro/internal/ui"
	"github.com/vladislavdragonenkov/bistro/internal/version"
)

// Run поднимает виджет корзины: читает команды из in, рисует в out и
// обслуживает /metrics и health checks, пока не закончится ввод, не придёт
// quit или не будет отменён ctx.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := log.WithField("component", "app")
	deps, err := NewDependencies(cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	out = &lockedWriter{w: out}
	term := ui.NewTerminal(out)
	ctrl := controller.New(
		deps.Repo,
		term,
		deps.Submitter,
		logger.WithField("layer", "cart"),
		controller.WithMetrics(deps.Metrics),
		controller.WithNotifyDelay(cfg.NotifyDelay),
	)
	defer ctrl.Close()

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("cart", healthcheck.NewSimpleChecker("cart", func() error {
		return errors.Join(deps.Repo.Snapshot().ValidateInvariants()...)
	}))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = startMetricsServer(runCtx, cfg.MetricsAddr, logger, healthHandler)
	}
	defer shutdownHTTP(metricsSrv, logger)

	shell := NewShell(ctrl, term, deps.Menu, out, logger.WithField("layer", "shell"))
	_, _ = io.WriteString(out, "Welcome to the bistro! Type help for commands.\n")

	stop := make(chan struct{})
	defer close(stop)

	lines := scanLines(in, stop)
	for {
		select {
		case <-ctx.Done():
			logger.Info("получен сигнал остановки, завершаем работу")
			shell.Wait()
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				logger.Info("ввод закончился, завершаем работу")
				shell.Wait()
				return nil
			}
			if err := shell.Exec(runCtx, line); errors.Is(err, ErrQuit) {
				shell.Wait()
				return nil
			}
		}
	}
}

// scanLines читает строки в отдельной горутине, чтобы цикл команд
// мог реагировать на отмену контекста.
func scanLines(in io.Reader, stop <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()
	return lines
}

// startMetricsServer запускает HTTP-обработчик /metrics и health checks.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}

// lockedWriter сериализует вывод терминала и интерпретатора команд.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
