// Package ui описывает поверхность отрисовки корзины и её реализации.
package ui

import (
	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/view"
)

// Surface объединяет внешние элементы страницы, с которыми работает контроллер:
// область корзины, счёт, форма оформления, уведомление и поля ввода.
type Surface interface {
	// Apply отрисовывает модель корзины и показывает/скрывает счёт и форму.
	Apply(model view.Model)
	// Alert показывает блокирующее сообщение об ошибке.
	Alert(msg string)
	// ShowNotification показывает транзиентное сообщение.
	ShowNotification(msg string)
	// HideNotification скрывает транзиентное сообщение.
	HideNotification()
	// CheckoutDetails читает текущие значения полей формы.
	CheckoutDetails() domain.CheckoutDetails
	// ClearCheckout очищает поля формы.
	ClearCheckout()
	// SetSubmitEnabled включает или блокирует кнопку оформления.
	SetSubmitEnabled(enabled bool)
}
