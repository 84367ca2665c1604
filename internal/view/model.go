// Package view строит модель отображения корзины без побочных эффектов.
package view

import "github.com/vladislavdragonenkov/bistro/internal/domain"

// EmptyMessage показывается вместо списка позиций, когда корзина пуста.
const EmptyMessage = "Your cart is empty"

// Action — действие кнопки +/- для конкретной позиции.
type Action struct {
	Name  string
	Delta int
}

// Line содержит строку корзины в готовом к выводу виде.
type Line struct {
	Name      string
	UnitPrice string
	Qty       int
	LineTotal string
	Increment Action
	Decrement Action
}

// Bill — форматированные суммы счёта.
type Bill struct {
	Subtotal string
	Tax      string
	Total    string
}

// Model содержит всё, что нужно поверхности для отрисовки корзины.
type Model struct {
	Empty        bool
	EmptyMessage string
	ShowBill     bool
	ShowCheckout bool
	Lines        []Line
	Bill         Bill
}

// Build проецирует снимок корзины в модель отображения.
func Build(cart domain.Cart) Model {
	if cart.IsEmpty() {
		return Model{
			Empty:        true,
			EmptyMessage: EmptyMessage,
		}
	}

	lines := make([]Line, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, Line{
			Name:      item.Name,
			UnitPrice: domain.FormatMinor(item.PriceMinor),
			Qty:       item.Qty,
			LineTotal: domain.FormatMinor(item.TotalMinor()),
			Increment: Action{Name: item.Name, Delta: 1},
			Decrement: Action{Name: item.Name, Delta: -1},
		})
	}

	bill := cart.Bill()
	return Model{
		ShowBill:     true,
		ShowCheckout: true,
		Lines:        lines,
		Bill: Bill{
			Subtotal: domain.FormatMinor(bill.SubtotalMinor),
			Tax:      domain.FormatMinor(bill.TaxMinor),
			Total:    domain.FormatMinor(bill.TotalMinor),
		},
	}
}
