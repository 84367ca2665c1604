package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — общий корень локальных ошибок валидации.
	ErrValidation = errors.New("validation failed")
	// ErrApplication — бэкенд вернул success=false.
	ErrApplication = errors.New("order rejected by backend")
	// ErrTransport — сеть, таймаут или непарсибельный ответ.
	ErrTransport = errors.New("order transport failed")

	// Ошибка незаполненных полей формы оформления.
	ErrCheckoutDetailsRequired = fmt.Errorf("%w: checkout details are required", ErrValidation)
	// Ошибка оформления пустой корзины.
	ErrCartEmpty = fmt.Errorf("%w: cart is empty", ErrValidation)
	// Ошибка пустого имени позиции.
	ErrLineNameRequired = fmt.Errorf("%w: item name is required", ErrValidation)
	// Ошибка отрицательной цены позиции.
	ErrLinePriceInvalid = fmt.Errorf("%w: item price must be non-negative", ErrValidation)
	// Ошибка некорректного количества (<= 0).
	ErrLineQtyInvalid = fmt.Errorf("%w: item qty must be greater than zero", ErrValidation)
	// Ошибка дублирования позиции с одинаковым именем.
	ErrLineDuplicate = fmt.Errorf("%w: duplicate cart line", ErrValidation)

	// ErrSubmitInFlight возвращается, пока предыдущий заказ ещё отправляется.
	ErrSubmitInFlight = errors.New("order submission already in flight")
	// ErrMenuItemNotFound возвращается, если позиции нет в меню.
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// ApplicationError несёт сообщение, которое бэкенд вернул вместе с success=false.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return ErrApplication.Error()
	}
	return fmt.Sprintf("%s: %s", ErrApplication, e.Message)
}

func (e *ApplicationError) Unwrap() error { return ErrApplication }

// TransportError оборачивает сетевую ошибку или ошибку разбора ответа.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

// Unwrap отдаёт и корень ErrTransport, и исходную причину.
func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// IsValidation проверяет, является ли ошибка локальной ошибкой валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsApplication проверяет, отклонил ли заказ бэкенд.
func IsApplication(err error) bool {
	return errors.Is(err, ErrApplication)
}

// IsTransport проверяет, является ли ошибка транспортной.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
