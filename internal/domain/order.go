package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CheckoutDetails содержит данные клиента, считанные с формы в момент оформления.
type CheckoutDetails struct {
	Name  string `json:"name"`
	Table string `json:"table"`
	Phone string `json:"phone"`
}

// Validate проверяет, что все поля формы заполнены.
func (d CheckoutDetails) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Table) == "" {
		missing = append(missing, "table")
	}
	if strings.TrimSpace(d.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrCheckoutDetailsRequired, strings.Join(missing, ", "))
	}
	return nil
}

// OrderLine — позиция корзины в формате запроса.
type OrderLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRequest — тело POST-запроса на оформление заказа.
type OrderRequest struct {
	Customer CheckoutDetails `json:"customer"`
	Cart     []OrderLine     `json:"cart"`
}

// NewOrderRequest собирает запрос из данных формы и снимка корзины.
func NewOrderRequest(details CheckoutDetails, cart Cart) (OrderRequest, error) {
	if err := details.Validate(); err != nil {
		return OrderRequest{}, err
	}
	if cart.IsEmpty() {
		return OrderRequest{}, ErrCartEmpty
	}

	lines := make([]OrderLine, 0, len(cart))
	for _, line := range cart {
		lines = append(lines, OrderLine{
			Name:     line.Name,
			Price:    MajorFromMinor(line.PriceMinor),
			Quantity: line.Qty,
		})
	}

	return OrderRequest{Customer: details, Cart: lines}, nil
}

// OrderID хранит идентификатор заказа; бэкенд может вернуть его строкой или числом.
type OrderID string

// UnmarshalJSON принимает как строковый, так и числовой идентификатор.
func (id *OrderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OrderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order_id: %w", err)
	}
	*id = OrderID(n.String())
	return nil
}

// OrderResult — ответ бэкенда на оформление заказа.
type OrderResult struct {
	Success bool    `json:"success"`
	OrderID OrderID `json:"order_id,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Err превращает неуспешный ответ в ApplicationError.
func (r OrderResult) Err() error {
	if r.Success {
		return nil
	}
	return &ApplicationError{Message: r.Message}
}
