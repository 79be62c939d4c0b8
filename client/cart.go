package client

import "github.com/bhetghat/bhetghat-server/models"

// Cart is the client-side selection list used by the checkout flow. It is
// never persisted server-side; the server only ever sees the product ids
// and the computed total at checkout.
type Cart struct {
	items []models.Product
}

// Add puts a product in the cart. Adding the same product twice is a no-op,
// reporting false.
func (c *Cart) Add(p models.Product) bool {
	for _, item := range c.items {
		if item.ID == p.ID {
			return false
		}
	}
	c.items = append(c.items, p)
	return true
}

// Remove drops a product by id, reporting whether it was present.
func (c *Cart) Remove(id string) bool {
	for i, item := range c.items {
		if item.ID.Hex() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the current selection.
func (c *Cart) Items() []models.Product {
	out := make([]models.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of selected products.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total sums the selected products' prices as displayed at checkout.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// IDs returns the product ids for the order payload.
func (c *Cart) IDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID.Hex()
	}
	return ids
}

// Clear empties the cart after a successful checkout.
func (c *Cart) Clear() {
	c.items = nil
}
