package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/view"
)

func TestBuild_EmptyCartHidesSections(t *testing.T) {
	model := view.Build(nil)

	require.True(t, model.Empty)
	require.Equal(t, view.EmptyMessage, model.EmptyMessage)
	require.False(t, model.ShowBill)
	require.False(t, model.ShowCheckout)
	require.Empty(t, model.Lines)
}

func TestBuild_ButterChickenTwice(t *testing.T) {
	cart := domain.Cart{{Name: "Butter Chicken", PriceMinor: 25000, Qty: 2}}

	model := view.Build(cart)

	require.False(t, model.Empty)
	require.True(t, model.ShowBill)
	require.True(t, model.ShowCheckout)
	require.Equal(t, []view.Line{{
		Name:      "Butter Chicken",
		UnitPrice: "₹250.00",
		Qty:       2,
		LineTotal: "₹500.00",
		Increment: view.Action{Name: "Butter Chicken", Delta: 1},
		Decrement: view.Action{Name: "Butter Chicken", Delta: -1},
	}}, model.Lines)
	require.Equal(t, view.Bill{Subtotal: "₹500.00", Tax: "₹25.00", Total: "₹525.00"}, model.Bill)
}

func TestBuild_PreservesOrder(t *testing.T) {
	cart := domain.Cart{
		{Name: "Veg Biryani", PriceMinor: 14000, Qty: 1},
		{Name: "Idli", PriceMinor: 4000, Qty: 2},
	}

	model := view.Build(cart)

	require.Len(t, model.Lines, 2)
	require.Equal(t, "Veg Biryani", model.Lines[0].Name)
	require.Equal(t, "Idli", model.Lines[1].Name)
	require.Equal(t, "₹80.00", model.Lines[1].LineTotal)
	require.Equal(t, view.Bill{Subtotal: "₹220.00", Tax: "₹11.00", Total: "₹231.00"}, model.Bill)
}

func TestBuild_NamesAreNotEscapedIntoMarkup(t *testing.T) {
	name := `Chef's "Special" <b>`
	model := view.Build(domain.Cart{{Name: name, PriceMinor: 100, Qty: 1}})

	require.Equal(t, name, model.Lines[0].Increment.Name)
	require.Equal(t, name, model.Lines[0].Decrement.Name)
}
