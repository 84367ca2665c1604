package notify

import (
	"testing"

	"go.uber.org/goleak"
)

// Таймеры автоскрытия не должны оставлять горутин после тестов.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
