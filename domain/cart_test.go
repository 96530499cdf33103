package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartAddMergesQuantities(t *testing.T) {
	cart := Cart{}

	cart = cart.Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 2})
	cart = cart.Add(CartLine{FoodID: 2, Name: "Idli", UnitPrice: 40, Quantity: 1})
	cart = cart.Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 3})

	assert.Len(t, cart.Lines, 2)

	line, ok := cart.Line(1)
	assert.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
}

func TestCartAddDoesNotMutateReceiver(t *testing.T) {
	original := Cart{}.Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 1})

	_ = original.Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 9})
	_ = original.UpdateQuantity(1, 7)
	_ = original.Remove(1)

	line, ok := original.Line(1)
	assert.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := Cart{}.Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 2})

	cart = cart.UpdateQuantity(1, 4)
	line, _ := cart.Line(1)
	assert.Equal(t, 4, line.Quantity)

	// zero or negative removes the line
	cart = cart.UpdateQuantity(1, 0)
	_, ok := cart.Line(1)
	assert.False(t, ok)
	assert.True(t, cart.Empty())
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := Cart{}.
		Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 1}).
		Add(CartLine{FoodID: 2, Name: "Idli", UnitPrice: 40, Quantity: 2})

	cart = cart.Remove(1)
	assert.Len(t, cart.Lines, 1)

	cart = cart.Clear()
	assert.True(t, cart.Empty())
}

func TestCartTotal(t *testing.T) {
	cart := Cart{}.
		Add(CartLine{FoodID: 1, Name: "Dosa", UnitPrice: 80, Quantity: 2}).
		Add(CartLine{FoodID: 2, Name: "Idli", UnitPrice: 40.5, Quantity: 2})

	assert.InDelta(t, 241, cart.Total(), 0.001)
	assert.Equal(t, float64(0), Cart{}.Total())
}
