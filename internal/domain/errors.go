package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderKeyRequired = errors.New("order key or contract is required")
	ErrItemCodeRequired = errors.New("item code is required")
	ErrOrderFinalized   = errors.New("order is already finalized")
	ErrItemNotInOrder   = errors.New("item does not belong to this order")

	ErrInvalidQuantity    = errors.New("quantity must be a whole number of 0 or more")
	ErrBalanceExceeded    = errors.New("quantity cannot exceed the available balance")
	ErrQuantityNotDefined = errors.New("define a quantity before packing a volume")
	ErrItemFullySeparated = errors.New("every unit of this item has already been packed")

	ErrInvalidVolumeNumber = errors.New("volume number must be greater than zero")
	ErrInvalidVolumeQty    = errors.New("volume quantity must be greater than zero")
	ErrRemainingExceeded   = errors.New("quantity is greater than the balance left to separate")
	ErrDefinedExceeded     = errors.New("quantity is greater than the defined quantity")
	ErrVolumeNumberTaken   = errors.New("this item already has a volume with that number, choose another number")

	ErrPhotoRequired  = errors.New("at least one photo is required")
	ErrTooManyPhotos  = errors.New("too many photos")
	ErrDriverRequired = errors.New("driver name is required")
	ErrPlateRequired  = errors.New("truck plate is required")

	ErrItemNotFullyPacked = errors.New("item still has quantity to pack before its volumes can be confirmed")
	ErrVolumeNotConfirmed = errors.New("volume must be confirmed before it is shipped")
	ErrShipmentIncomplete = errors.New("every volume must be confirmed and shipped before closing the shipment")
	ErrNoVolumes          = errors.New("order has no volumes to ship")

	ErrSeparationIncomplete = errors.New("every item with a defined quantity must be fully separated first")
	ErrItemChanged          = errors.New("item quantity was changed meanwhile, reload and try again")
)

// ConfirmationRequiredError is returned when a previously defined
// quantity is about to change and the caller did not confirm it.
type ConfirmationRequiredError struct {
	From int
	To   int
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("confirm changing the quantity from %d to %d", e.From, e.To)
}
