package cart

import (
	"encoding/json"
	"log"
)

// Item is the snapshot of a purchasable offering (course or dentist
// registration program) taken at the moment it is added. The snapshot is
// never reconciled against the catalog; a since-deleted course stays in the
// cart until checkout re-validates it.
type Item struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// Line pairs an item snapshot with its quantity.
type Line struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Cart holds one visitor's pending purchases. It is a plain data structure:
// four mutations, two queries, and best-effort persistence after every
// mutation. Carts belong to exactly one visitor; concurrent sessions are not
// synchronized and the last write wins.
type Cart struct {
	lines map[string]*Line
	order []string
	store Storage
}

// New builds a cart rehydrated from storage. A missing or corrupt stored
// value yields an empty cart, never an error.
func New(store Storage) *Cart {
	c := &Cart{
		lines: make(map[string]*Line),
		store: store,
	}

	if store == nil {
		return c
	}

	data, ok := store.Load()
	if !ok {
		return c
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return c
	}

	for i := range lines {
		line := lines[i]
		if line.Quantity < 1 {
			continue
		}
		c.lines[line.Item.ID] = &line
		c.order = append(c.order, line.Item.ID)
	}
	return c
}

// Add inserts the item with quantity 1, or increments the quantity when the
// same item id is already present.
func (c *Cart) Add(item Item) {
	if line, ok := c.lines[item.ID]; ok {
		line.Quantity++
	} else {
		c.lines[item.ID] = &Line{Item: item, Quantity: 1}
		c.order = append(c.order, item.ID)
	}
	c.persist()
}

// Remove deletes the line outright regardless of quantity.
func (c *Cart) Remove(itemID string) {
	if _, ok := c.lines[itemID]; !ok {
		return
	}
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.persist()
}

// UpdateQuantity overwrites the line's quantity. A quantity of zero or less
// behaves exactly like Remove.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	if line, ok := c.lines[itemID]; ok {
		line.Quantity = quantity
		c.persist()
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
	c.order = nil
	c.persist()
}

// TotalPrice sums price times quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}

// persist serializes the whole cart after every mutation. Failures are logged
// and otherwise ignored; the in-memory state stays authoritative.
func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(c.Lines())
	if err != nil {
		log.Printf("cart: serialize failed: %v", err)
		return
	}
	if err := c.store.Save(data); err != nil {
		log.Printf("cart: persist failed: %v", err)
	}
}
