package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/view"
)

// CheckoutField задаёт поле формы оформления.
type CheckoutField string

const (
	FieldName  CheckoutField = "name"
	FieldTable CheckoutField = "table"
	FieldPhone CheckoutField = "phone"
)

// ParseCheckoutField разбирает имя поля из команды терминала.
func ParseCheckoutField(value string) (CheckoutField, error) {
	switch CheckoutField(strings.ToLower(strings.TrimSpace(value))) {
	case FieldName:
		return FieldName, nil
	case FieldTable:
		return FieldTable, nil
	case FieldPhone:
		return FieldPhone, nil
	default:
		return "", fmt.Errorf("unknown checkout field: %s", value)
	}
}

// Terminal рисует корзину текстом в io.Writer.
type Terminal struct {
	mu            sync.Mutex
	out           io.Writer
	details       domain.CheckoutDetails
	submitEnabled bool
	checkout      bool
}

// NewTerminal создаёт поверхность, пишущую в out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, submitEnabled: true}
}

// Apply печатает корзину, счёт и состояние формы.
func (t *Terminal) Apply(model view.Model) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.checkout = model.ShowCheckout

	var b strings.Builder
	b.WriteString("---- cart ----\n")
	if model.Empty {
		b.WriteString(model.EmptyMessage)
		b.WriteString("\n")
		t.write(b.String())
		return
	}

	for _, line := range model.Lines {
		fmt.Fprintf(&b, "%-24s %s each  [-] %d [+]  %s\n", line.Name, line.UnitPrice, line.Qty, line.LineTotal)
	}
	if model.ShowBill {
		fmt.Fprintf(&b, "%-24s %s\n", "Subtotal", model.Bill.Subtotal)
		fmt.Fprintf(&b, "%-24s %s\n", fmt.Sprintf("GST (%d%%)", domain.TaxRatePercent), model.Bill.Tax)
		fmt.Fprintf(&b, "%-24s %s\n", "Total", model.Bill.Total)
	}
	if model.ShowCheckout {
		fmt.Fprintf(&b, "checkout: name=%q table=%q phone=%q\n", t.details.Name, t.details.Table, t.details.Phone)
	}
	t.write(b.String())
}

// Alert печатает сообщение об ошибке.
func (t *Terminal) Alert(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.write("! " + msg + "\n")
}

// ShowNotification печатает уведомление.
func (t *Terminal) ShowNotification(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.write("* " + msg + "\n")
}

// HideNotification в терминале ничего не стирает.
func (t *Terminal) HideNotification() {}

// CheckoutDetails возвращает введённые значения формы.
func (t *Terminal) CheckoutDetails() domain.CheckoutDetails {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.details
}

// SetField заполняет поле формы оформления.
func (t *Terminal) SetField(field CheckoutField, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch field {
	case FieldName:
		t.details.Name = value
	case FieldTable:
		t.details.Table = value
	case FieldPhone:
		t.details.Phone = value
	}
}

// ClearCheckout очищает форму.
func (t *Terminal) ClearCheckout() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.details = domain.CheckoutDetails{}
}

// SetSubmitEnabled запоминает состояние кнопки оформления.
func (t *Terminal) SetSubmitEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.submitEnabled = enabled
	if !enabled {
		t.write("... placing order\n")
	}
}

// SubmitEnabled сообщает, доступна ли сейчас кнопка оформления.
func (t *Terminal) SubmitEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitEnabled && t.checkout
}

func (t *Terminal) write(s string) {
	_, _ = io.WriteString(t.out, s)
}

var _ Surface = (*Terminal)(nil)
