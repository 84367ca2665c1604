package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubDisplay struct {
	mu    sync.Mutex
	shown []string
	hides int
}

func (d *stubDisplay) ShowNotification(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, msg)
}

func (d *stubDisplay) HideNotification() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hides++
}

func (d *stubDisplay) hideCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hides
}

func TestNotifier_DefaultDelay(t *testing.T) {
	n := New(&stubDisplay{})
	require.Equal(t, 3*time.Second, n.delay)

	n = New(&stubDisplay{}, WithDismissDelay(0))
	require.Equal(t, DefaultDismissDelay, n.delay)
}

func TestNotifier_AutoDismiss(t *testing.T) {
	t.Parallel()

	display := &stubDisplay{}
	n := New(display, WithDismissDelay(20*time.Millisecond))

	n.Show("Added Idli to cart!")
	require.Equal(t, "Added Idli to cart!", n.Current())

	require.Eventually(t, func() bool { return display.hideCount() == 1 }, time.Second, 5*time.Millisecond)
	require.Empty(t, n.Current())
}

func TestNotifier_OverlappingResetsTimer(t *testing.T) {
	t.Parallel()

	display := &stubDisplay{}
	n := New(display, WithDismissDelay(200*time.Millisecond))

	n.Show("first")
	time.Sleep(120 * time.Millisecond)
	n.Show("second")

	// Первый таймер истёк бы здесь, но он был перезапущен.
	time.Sleep(120 * time.Millisecond)
	require.Equal(t, 0, display.hideCount())
	require.Equal(t, "second", n.Current())

	require.Eventually(t, func() bool { return display.hideCount() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"first", "second"}, display.shown)
}

func TestNotifier_StaleTimerIgnored(t *testing.T) {
	display := &stubDisplay{}
	n := New(display)

	n.Show("first")
	n.Show("second")
	n.dismiss(1)

	require.Equal(t, 0, display.hideCount())
	require.Equal(t, "second", n.Current())
	n.Stop()
}
