package domain

// CartRepository описывает требования к хранилищу корзины.
type CartRepository interface {
	// Add увеличивает количество позиции на единицу или добавляет её в конец корзины.
	Add(name string, priceMinor int64) (CartLine, error)
	// Remove удаляет позицию; отсутствие позиции ошибкой не считается.
	Remove(name string) bool
	// UpdateQuantity меняет количество на delta; при результате <= 0 позиция удаляется.
	UpdateQuantity(name string, delta int) (CartLine, bool)
	// Reset очищает корзину.
	Reset()
	// Snapshot возвращает копию текущего состояния.
	Snapshot() Cart
	// Subscribe подписывает fn на изменения; возвращает функцию отписки.
	Subscribe(fn func(Cart)) (unsubscribe func())
}
