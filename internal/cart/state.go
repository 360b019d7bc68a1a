package cart

import (
	"github.com/google/uuid"
)

// Item is one purchasable line in a shopper's cart. Name and image are
// snapshotted at add time so the cart stays renderable if the product
// changes later.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	NameBN    string    `json:"name_bn,omitempty"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	Quantity  int       `json:"quantity"`
}

// Subtotal is the line total for the item.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// State is a cart snapshot. Total and ItemCount are derived from Items
// and recomputed on every mutation, never stored authoritatively.
type State struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// EmptyState returns a cart with no items and zeroed aggregates.
func EmptyState() State {
	return State{Items: []Item{}}
}

func (s State) recompute() State {
	var total float64
	var count int
	for _, item := range s.Items {
		total += item.Subtotal()
		count += item.Quantity
	}
	s.Total = total
	s.ItemCount = count
	return s
}

// add merges the incoming item into the cart. An existing line for the
// same product keeps its position and gains the incoming quantity.
func add(s State, incoming Item) State {
	next := make([]Item, len(s.Items))
	copy(next, s.Items)

	merged := false
	for idx := range next {
		if next[idx].ProductID == incoming.ProductID {
			next[idx].Quantity += incoming.Quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, incoming)
	}

	s.Items = next
	return s.recompute()
}

// remove drops the line for the product. Removing an absent product is a
// no-op.
func remove(s State, productID uuid.UUID) State {
	next := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	s.Items = next
	return s.recompute()
}

// setQuantity overwrites the quantity for the product. Negative values
// clamp to zero, and a zero quantity removes the line entirely.
func setQuantity(s State, productID uuid.UUID, quantity int) State {
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		return remove(s, productID)
	}

	next := make([]Item, len(s.Items))
	copy(next, s.Items)
	for idx := range next {
		if next[idx].ProductID == productID {
			next[idx].Quantity = quantity
			break
		}
	}
	s.Items = next
	return s.recompute()
}

// load replaces the cart wholesale with the provided items, recomputing
// aggregates so tampered or stale totals never survive a reload. Lines
// without a positive quantity are dropped, matching setQuantity's zero
// handling; a cart must never hold a line checkout would reject.
func load(items []Item) State {
	next := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		next = append(next, item)
	}
	return State{Items: next}.recompute()
}
