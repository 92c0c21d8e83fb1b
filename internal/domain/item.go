package domain

import "github.com/google/uuid"

// LineItem is one product code within an order.
//
// Balance is the contractual balance still available to load. Defining a
// quantity moves units between Balance and Defined, so Balance+Defined is
// constant for an item across redefinitions.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	OrderKey    string    `json:"order_key"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Balance     int       `json:"balance"`
	Defined     int       `json:"defined"`
	Separated   int       `json:"separated"`
	Remaining   int       `json:"remaining"`
	Selected    bool      `json:"selected"`
}

type ItemStatus string

const (
	StatusNotDefined ItemStatus = "not_defined"
	StatusPending    ItemStatus = "pending"
	StatusPartial    ItemStatus = "partial"
	StatusSeparated  ItemStatus = "separated"
)

func (it *LineItem) Status() ItemStatus {
	switch {
	case it.Defined <= 0:
		return StatusNotDefined
	case it.Separated >= it.Defined:
		return StatusSeparated
	case it.Separated > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// Available is the most that can be defined for this shipment.
func (it *LineItem) Available() int {
	return it.Balance + it.Defined
}

// QuantityChange is the outcome of validating a new defined quantity.
type QuantityChange struct {
	ItemID     uuid.UUID
	From       int
	To         int
	NewBalance int
}

// Noop reports whether the change leaves the item untouched.
func (c QuantityChange) Noop() bool {
	return c.From == c.To
}

// PlanQuantity validates redefining the item's quantity to qty. Changing
// a nonzero quantity needs confirmed set.
func (it *LineItem) PlanQuantity(qty int, confirmed bool) (QuantityChange, error) {
	ch := QuantityChange{ItemID: it.ID, From: it.Defined, To: qty, NewBalance: it.Balance}
	if qty < 0 {
		return ch, ErrInvalidQuantity
	}
	if qty > it.Available() {
		return ch, ErrBalanceExceeded
	}
	if ch.Noop() {
		return ch, nil
	}
	if it.Defined > 0 && !confirmed {
		return ch, &ConfirmationRequiredError{From: it.Defined, To: qty}
	}
	ch.NewBalance = it.Available() - qty
	return ch, nil
}

// Apply mirrors what the store does for a committed change: packing
// restarts from zero for the new quantity.
func (it *LineItem) Apply(ch QuantityChange) {
	if ch.Noop() {
		return
	}
	it.Defined = ch.To
	it.Balance = ch.NewBalance
	it.Separated = 0
	it.Remaining = ch.To
	it.Selected = ch.To > 0
}

// CheckPackable reports why no volume can be packed for the item, if any.
func (it *LineItem) CheckPackable() error {
	if it.Defined <= 0 {
		return ErrQuantityNotDefined
	}
	if it.Remaining <= 0 {
		return ErrItemFullySeparated
	}
	return nil
}
