package notify

import (
	"sync"
	"time"
)

// DefaultDismissDelay задаёт, через сколько скрывается уведомление.
const DefaultDismissDelay = 3 * time.Second

// Display показывает и скрывает транзиентное уведомление.
type Display interface {
	ShowNotification(msg string)
	HideNotification()
}

// Option настраивает Notifier.
type Option func(*Notifier)

// WithDismissDelay переопределяет задержку автоскрытия.
func WithDismissDelay(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.delay = d
		}
	}
}

// Notifier показывает последнее сообщение и скрывает его по таймеру.
// Новое сообщение заменяет текущее и перезапускает таймер; очереди нет.
type Notifier struct {
	display Display
	delay   time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	current    string
}

// New создаёт Notifier поверх display.
func New(display Display, opts ...Option) *Notifier {
	n := &Notifier{
		display: display,
		delay:   DefaultDismissDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show выводит сообщение и (пере)запускает таймер скрытия.
func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.generation++
	gen := n.generation
	n.current = msg

	n.display.ShowNotification(msg)
	n.timer = time.AfterFunc(n.delay, func() { n.dismiss(gen) })
}

// Current возвращает видимое сейчас сообщение или пустую строку.
func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Stop отменяет ожидающее скрытие, не трогая дисплей.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// dismiss срабатывает по таймеру; устаревшие таймеры игнорируются.
func (n *Notifier) dismiss(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.generation {
		return
	}
	n.current = ""
	n.timer = nil
	n.display.HideNotification()
}
