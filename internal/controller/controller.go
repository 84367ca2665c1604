package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/metrics"
	"github.com/vladislavdragonenkov/bistro/internal/notify"
	"github.com/vladislavdragonenkov/bistro/internal/ui"
	"github.com/vladislavdragonenkov/bistro/internal/view"
)

// Тексты, которые видит пользователь.
const (
	MsgDetailsRequired = "Please fill in all checkout details!"
	MsgCartEmpty       = "Your cart is empty!"
	MsgConnectFailed   = "Failed to connect to server."
	msgOrderErrorFmt   = "Error placing order: %s"
	msgOrderPlacedFmt  = "Order #%s placed! Kitchen is notified."
	msgItemAddedFmt    = "Added %s to cart!"
)

// Option настраивает Controller.
type Option func(*Controller)

// WithMetrics подключает Prometheus-метрики.
func WithMetrics(m *metrics.CartMetrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithNotifyDelay переопределяет задержку скрытия уведомлений.
func WithNotifyDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.notifyOpts = append(c.notifyOpts, notify.WithDismissDelay(d))
	}
}

// Controller управляет корзиной: мутации, отрисовка и отправка заказа.
// Все события поверхности выполняются последовательно под одной блокировкой;
// сетевой запрос выполняется без неё.
type Controller struct {
	mu        sync.Mutex
	repo      domain.CartRepository
	surface   ui.Surface
	submitter domain.OrderSubmitter
	logger    *log.Entry
	metrics   *metrics.CartMetrics
	notifier  *notify.Notifier
	state     domain.SubmitState

	notifyOpts  []notify.Option
	unsubscribe func()
}

// New создаёт контроллер и сразу отрисовывает текущее состояние корзины.
func New(repo domain.CartRepository, surface ui.Surface, submitter domain.OrderSubmitter, logger *log.Entry, opts ...Option) *Controller {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}

	c := &Controller{
		repo:      repo,
		surface:   surface,
		submitter: submitter,
		logger:    logger,
		state:     domain.SubmitStateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.notifier = notify.New(surface, c.notifyOpts...)

	if c.metrics != nil {
		c.unsubscribe = repo.Subscribe(func(cart domain.Cart) {
			c.metrics.SetCartLines(len(cart))
		})
	}

	c.Render()
	return c
}

// AddToCart добавляет единицу позиции, перерисовывает корзину и показывает уведомление.
func (c *Controller) AddToCart(name string, priceMinor int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, err := c.repo.Add(name, priceMinor)
	if err != nil {
		c.logger.WithError(err).WithField("item", name).Warn("item rejected")
		return err
	}
	c.metrics.RecordItemAdded()
	c.logger.WithFields(log.Fields{"item": line.Name, "qty": line.Qty}).Debug("item added")

	c.renderLocked()
	c.notifier.Show(fmt.Sprintf(msgItemAddedFmt, name))
	return nil
}

// RemoveFromCart удаляет позицию; отсутствие позиции не ошибка.
func (c *Controller) RemoveFromCart(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(name)
}

// UpdateQuantity меняет количество на delta; при результате <= 0 позиция удаляется.
func (c *Controller) UpdateQuantity(name string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.repo.UpdateQuantity(name, delta)
	if !ok {
		return
	}
	if line.Qty <= 0 {
		c.metrics.RecordLineRemoved()
		c.logger.WithField("item", name).Debug("line removed")
	}
	c.renderLocked()
}

// Apply выполняет действие кнопки +/- из модели отображения.
func (c *Controller) Apply(action view.Action) {
	c.UpdateQuantity(action.Name, action.Delta)
}

// Render отрисовывает текущее состояние корзины.
func (c *Controller) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderLocked()
}

// ShowNotification показывает транзиентное сообщение на 3 секунды.
func (c *Controller) ShowNotification(msg string) {
	c.notifier.Show(msg)
}

// Cart возвращает снимок корзины.
func (c *Controller) Cart() domain.Cart {
	return c.repo.Snapshot()
}

// SubmitState возвращает текущее состояние отправки.
func (c *Controller) SubmitState() domain.SubmitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PlaceOrder валидирует форму и корзину, затем отправляет заказ и ждёт ответа.
// Возвращает ошибку, которую показал пользователю, либо ErrSubmitInFlight,
// если предыдущая отправка ещё не завершилась.
func (c *Controller) PlaceOrder(ctx context.Context) error {
	req, err := c.beginSubmit()
	if err != nil {
		return err
	}

	started := time.Now()
	c.metrics.RecordSubmitStarted()
	result, err := c.submitter.PlaceOrder(ctx, req)
	if err == nil {
		err = result.Err()
	}

	return c.finishSubmit(req, result, err, time.Since(started))
}

// PlaceOrderAsync запускает PlaceOrder в отдельной горутине; канал получает результат.
func (c *Controller) PlaceOrderAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- c.PlaceOrder(ctx)
	}()
	return done
}

// Close останавливает таймер уведомления и отписывается от корзины.
func (c *Controller) Close() {
	c.notifier.Stop()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// beginSubmit проверяет состояние и переводит отправку в pending.
func (c *Controller) beginSubmit() (domain.OrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.SubmitStatePending {
		c.metrics.RecordSubmitRejected(string(domain.SubmitOutcomeDuplicate))
		c.logger.Debug("order submission already in flight, ignoring")
		return domain.OrderRequest{}, domain.ErrSubmitInFlight
	}

	req, err := domain.NewOrderRequest(c.surface.CheckoutDetails(), c.repo.Snapshot())
	if err != nil {
		c.metrics.RecordSubmitRejected(string(domain.SubmitOutcomeValidation))
		c.logger.WithError(err).Info("checkout validation failed")
		switch {
		case errors.Is(err, domain.ErrCartEmpty):
			c.surface.Alert(MsgCartEmpty)
		default:
			c.surface.Alert(MsgDetailsRequired)
		}
		return domain.OrderRequest{}, err
	}

	c.state = domain.SubmitStatePending
	c.surface.SetSubmitEnabled(false)
	return req, nil
}

// finishSubmit возвращает отправку в idle и применяет результат.
func (c *Controller) finishSubmit(req domain.OrderRequest, result domain.OrderResult, err error, took time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = domain.SubmitStateIdle
	defer c.surface.SetSubmitEnabled(true)

	logger := c.logger.WithFields(log.Fields{
		"table": req.Customer.Table,
		"lines": len(req.Cart),
		"took":  took,
	})

	switch {
	case err == nil:
		c.metrics.RecordSubmitFinished(string(domain.SubmitOutcomeSuccess), took)
		logger.WithField("order_id", result.OrderID).Info("order placed")
		c.notifier.Show(fmt.Sprintf(msgOrderPlacedFmt, result.OrderID))
		c.repo.Reset()
		c.renderLocked()
		c.surface.ClearCheckout()
		return nil
	case domain.IsApplication(err):
		c.metrics.RecordSubmitFinished(string(domain.SubmitOutcomeRejected), took)
		logger.WithError(err).Warn("order rejected by backend")
		c.surface.Alert(fmt.Sprintf(msgOrderErrorFmt, result.Message))
		return err
	default:
		c.metrics.RecordSubmitFinished(string(domain.SubmitOutcomeTransport), took)
		logger.WithError(err).Error("order submission failed")
		c.surface.Alert(MsgConnectFailed)
		if !domain.IsTransport(err) {
			err = &domain.TransportError{Op: "submit", Err: err}
		}
		return err
	}
}

func (c *Controller) removeLocked(name string) {
	if c.repo.Remove(name) {
		c.metrics.RecordLineRemoved()
		c.logger.WithField("item", name).Debug("line removed")
	}
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	c.surface.Apply(view.Build(c.repo.Snapshot()))
}
