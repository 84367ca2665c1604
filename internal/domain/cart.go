package domain

import "strings"

// CartLine представляет одну позицию корзины.
type CartLine struct {
	// Name — уникальный ключ позиции внутри корзины.
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (пайсы).
	PriceMinor int64
	// Qty — количество, всегда больше нуля.
	Qty int
}

// TotalMinor возвращает стоимость позиции: цена * количество.
func (l CartLine) TotalMinor() int64 {
	return l.PriceMinor * int64(l.Qty)
}

// Cart является неизменяемым снимком корзины; порядок позиций совпадает с порядком добавления.
type Cart []CartLine

// IsEmpty сообщает, что в корзине нет ни одной позиции.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Find возвращает позицию по имени.
func (c Cart) Find(name string) (CartLine, bool) {
	for _, line := range c {
		if line.Name == name {
			return line, true
		}
	}
	return CartLine{}, false
}

// Bill считает итоговый счёт по всем позициям.
func (c Cart) Bill() Bill {
	var subtotal int64
	for _, line := range c {
		subtotal += line.TotalMinor()
	}
	return NewBill(subtotal)
}

// ValidateInvariants проверяет инварианты корзины и возвращает список замечаний.
func (c Cart) ValidateInvariants() []error {
	var errs []error

	seen := make(map[string]struct{}, len(c))
	for _, line := range c {
		if strings.TrimSpace(line.Name) == "" {
			errs = append(errs, ErrLineNameRequired)
		}
		if line.PriceMinor < 0 {
			errs = append(errs, ErrLinePriceInvalid)
		}
		if line.Qty <= 0 {
			errs = append(errs, ErrLineQtyInvalid)
		}
		if _, dup := seen[line.Name]; dup {
			errs = append(errs, ErrLineDuplicate)
		}
		seen[line.Name] = struct{}{}
	}

	return errs
}
