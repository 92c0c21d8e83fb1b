package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packable() *LineItem {
	return &LineItem{ID: uuid.New(), OrderKey: "K", Code: "P-1", Defined: 10, Separated: 4, Remaining: 6}
}

func TestNewVolume(t *testing.T) {
	it := packable()
	v, err := NewVolume(it, PackVolumeInput{Number: 2, Quantity: 6, Photos: []string{"", "http://x/1.jpg", " "}})
	require.NoError(t, err)
	assert.Equal(t, it.ID, v.ItemID)
	assert.Equal(t, "K", v.OrderKey)
	assert.Equal(t, []string{"http://x/1.jpg"}, v.Photos)
	assert.False(t, v.Confirmed)
	assert.False(t, v.Shipped)
}

func TestNewVolumeRejects(t *testing.T) {
	photo := []string{"http://x/1.jpg"}
	tests := []struct {
		name string
		item *LineItem
		in   PackVolumeInput
		want error
	}{
		{"undefined item", &LineItem{}, PackVolumeInput{Number: 1, Quantity: 1, Photos: photo}, ErrQuantityNotDefined},
		{"zero number", packable(), PackVolumeInput{Quantity: 1, Photos: photo}, ErrInvalidVolumeNumber},
		{"zero quantity", packable(), PackVolumeInput{Number: 1, Photos: photo}, ErrInvalidVolumeQty},
		{"above remaining", packable(), PackVolumeInput{Number: 1, Quantity: 7, Photos: photo}, ErrRemainingExceeded},
		{"no photo", packable(), PackVolumeInput{Number: 1, Quantity: 1, Photos: []string{""}}, ErrPhotoRequired},
		{"five photos", packable(), PackVolumeInput{Number: 1, Quantity: 1, Photos: []string{"a", "b", "c", "d", "e"}}, ErrTooManyPhotos},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVolume(tc.item, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewClosure(t *testing.T) {
	c, err := NewClosure("K", CloseShipmentInput{DriverName: " Joao ", Plate: "abc1d23", Photos: []string{"p1"}})
	require.NoError(t, err)
	assert.Equal(t, "Joao", c.DriverName)
	assert.Equal(t, "ABC1D23", c.Plate)

	_, err = NewClosure("K", CloseShipmentInput{Plate: "X", Photos: []string{"p"}})
	assert.ErrorIs(t, err, ErrDriverRequired)
	_, err = NewClosure("K", CloseShipmentInput{DriverName: "D", Photos: []string{"p"}})
	assert.ErrorIs(t, err, ErrPlateRequired)
	_, err = NewClosure("K", CloseShipmentInput{DriverName: "D", Plate: "X"})
	assert.ErrorIs(t, err, ErrPhotoRequired)

	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "p"
	}
	_, err = NewClosure("K", CloseShipmentInput{DriverName: "D", Plate: "X", Photos: eleven})
	assert.ErrorIs(t, err, ErrTooManyPhotos)
}

func TestShippingBoard(t *testing.T) {
	items := []*LineItem{
		{Code: "A", Defined: 2, Separated: 2},
		{Code: "B", Defined: 3, Separated: 3},
	}
	vols := []*Volume{
		{Code: "A", Quantity: 2, Confirmed: true, Shipped: true},
		{Code: "B", Quantity: 3, Confirmed: true},
	}
	b := NewShippingBoard("K", items, vols, map[string]float64{"A": 1.5})
	assert.InDelta(t, 3.0, b.TotalWeight, 1e-9)
	assert.Equal(t, 2, b.Confirmed)
	assert.Equal(t, 1, b.Shipped)
	assert.True(t, b.Progress.CanProceed)
	assert.False(t, b.CanClose)

	vols[1].Shipped = true
	assert.NoError(t, CheckClosable(items, vols))
	assert.True(t, NewShippingBoard("K", items, vols, nil).CanClose)
	assert.ErrorIs(t, CheckClosable(items, nil), ErrNoVolumes)
}

func TestShippingBoardNeedsFullSeparation(t *testing.T) {
	items := []*LineItem{
		{Code: "A", Defined: 2, Separated: 2},
		{Code: "B", Defined: 5},
	}
	vols := []*Volume{{Code: "A", Quantity: 2, Confirmed: true, Shipped: true}}

	b := NewShippingBoard("K", items, vols, nil)
	assert.Equal(t, 50, b.Progress.Percent)
	assert.False(t, b.CanClose)
	assert.ErrorIs(t, CheckClosable(items, vols), ErrSeparationIncomplete)
	assert.ErrorIs(t, CheckProceed(items), ErrSeparationIncomplete)
	assert.ErrorIs(t, CheckProceed(nil), ErrSeparationIncomplete)

	items[1].Defined = 0
	assert.NoError(t, CheckClosable(items, vols))
}

func TestParseUnitWeight(t *testing.T) {
	assert.InDelta(t, 12.5, ParseUnitWeight("12,5"), 1e-9)
	assert.InDelta(t, 0.25, ParseUnitWeight(" 0.25 "), 1e-9)
	assert.Zero(t, ParseUnitWeight("n/a"))
	assert.Zero(t, ParseUnitWeight("-3"))
}
