package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
)

// Item описывает позицию меню ресторана.
type Item struct {
	ID         int
	Name       string
	PriceMinor int64
}

// Catalog хранит меню в порядке показа.
type Catalog struct {
	items []Item
}

// Default возвращает стандартное меню бистро.
func Default() *Catalog {
	return NewCatalog([]Item{
		{ID: 1, Name: "Idli", PriceMinor: 4000},
		{ID: 2, Name: "Dosa", PriceMinor: 7000},
		{ID: 3, Name: "Paneer Butter Masala", PriceMinor: 16000},
		{ID: 4, Name: "Veg Biryani", PriceMinor: 14000},
		{ID: 5, Name: "Butter Naan", PriceMinor: 3000},
	})
}

// NewCatalog создаёт меню из списка позиций.
func NewCatalog(items []Item) *Catalog {
	copied := make([]Item, len(items))
	copy(copied, items)
	return &Catalog{items: copied}
}

// Items возвращает копию позиций меню.
func (c *Catalog) Items() []Item {
	result := make([]Item, len(c.items))
	copy(result, c.items)
	return result
}

// Lookup ищет позицию по числовому ID или по имени без учёта регистра.
func (c *Catalog) Lookup(ref string) (Item, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		for _, item := range c.items {
			if item.ID == id {
				return item, nil
			}
		}
		return Item{}, fmt.Errorf("%w: id %d", domain.ErrMenuItemNotFound, id)
	}
	for _, item := range c.items {
		if strings.EqualFold(item.Name, ref) {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %q", domain.ErrMenuItemNotFound, ref)
}
