package domain

// Cart is a value type: every reducer returns a new cart and leaves the
// receiver untouched, and the total is derived on read instead of being
// stored alongside the lines.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

type CartLine struct {
	FoodID    uint    `json:"food_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func (c Cart) clone() Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Add appends a line, merging quantities when the food is already present.
func (c Cart) Add(line CartLine) Cart {
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].FoodID == line.FoodID {
			next.Lines[i].Quantity += line.Quantity
			return next
		}
	}
	next.Lines = append(next.Lines, line)
	return next
}

// UpdateQuantity sets the quantity of an existing line; a quantity of zero
// or less removes the line.
func (c Cart) UpdateQuantity(foodID uint, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(foodID)
	}
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].FoodID == foodID {
			next.Lines[i].Quantity = quantity
		}
	}
	return next
}

func (c Cart) Remove(foodID uint) Cart {
	next := Cart{Lines: make([]CartLine, 0, len(c.Lines))}
	for _, line := range c.Lines {
		if line.FoodID != foodID {
			next.Lines = append(next.Lines, line)
		}
	}
	return next
}

func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) Line(foodID uint) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.FoodID == foodID {
			return line, true
		}
	}
	return CartLine{}, false
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}
