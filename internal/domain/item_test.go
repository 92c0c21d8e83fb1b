package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanQuantity(t *testing.T) {
	tests := []struct {
		name      string
		item      LineItem
		qty       int
		confirmed bool
		wantErr   error
		wantBal   int
	}{
		{name: "first definition", item: LineItem{Balance: 10}, qty: 4, wantBal: 6},
		{name: "full balance", item: LineItem{Balance: 10}, qty: 10, wantBal: 0},
		{name: "negative", item: LineItem{Balance: 10}, qty: -1, wantErr: ErrInvalidQuantity, wantBal: 10},
		{name: "above balance", item: LineItem{Balance: 10}, qty: 11, wantErr: ErrBalanceExceeded, wantBal: 10},
		{name: "previous quantity counts as available", item: LineItem{Balance: 2, Defined: 8}, qty: 10, confirmed: true, wantBal: 0},
		{name: "revert to zero", item: LineItem{Balance: 2, Defined: 8}, qty: 0, confirmed: true, wantBal: 10},
		{name: "unchanged needs no confirmation", item: LineItem{Balance: 2, Defined: 8}, qty: 8, wantBal: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ch, err := tc.item.PlanQuantity(tc.qty, tc.confirmed)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBal, ch.NewBalance)
		})
	}
}

func TestPlanQuantityAsksForConfirmation(t *testing.T) {
	it := LineItem{Balance: 5, Defined: 5}

	_, err := it.PlanQuantity(3, false)

	var confirm *ConfirmationRequiredError
	require.ErrorAs(t, err, &confirm)
	assert.Equal(t, 5, confirm.From)
	assert.Equal(t, 3, confirm.To)
	assert.Contains(t, err.Error(), "from 5 to 3")
}

func TestApplyResetsPacking(t *testing.T) {
	it := LineItem{Balance: 0, Defined: 10, Separated: 6, Remaining: 4, Selected: true}

	ch, err := it.PlanQuantity(7, true)
	require.NoError(t, err)
	it.Apply(ch)

	assert.Equal(t, 7, it.Defined)
	assert.Equal(t, 3, it.Balance)
	assert.Equal(t, 0, it.Separated)
	assert.Equal(t, 7, it.Remaining)
	assert.True(t, it.Selected)
	assert.Equal(t, 10, it.Available())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusNotDefined, (&LineItem{}).Status())
	assert.Equal(t, StatusPending, (&LineItem{Defined: 3}).Status())
	assert.Equal(t, StatusPartial, (&LineItem{Defined: 3, Separated: 1}).Status())
	assert.Equal(t, StatusSeparated, (&LineItem{Defined: 3, Separated: 3}).Status())
}

func TestCheckPackable(t *testing.T) {
	assert.ErrorIs(t, (&LineItem{}).CheckPackable(), ErrQuantityNotDefined)
	assert.ErrorIs(t, (&LineItem{Defined: 2, Separated: 2}).CheckPackable(), ErrItemFullySeparated)
	assert.NoError(t, (&LineItem{Defined: 2, Remaining: 1}).CheckPackable())
}

func TestComputeProgress(t *testing.T) {
	items := []*LineItem{
		{Defined: 0},
		{Defined: 4, Separated: 4},
		{Defined: 4, Separated: 1},
		{Defined: 2, Separated: 0},
	}
	p := ComputeProgress(items)
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 33, p.Percent)
	assert.False(t, p.CanProceed)

	items[2].Separated = 4
	items[3].Separated = 2
	p = ComputeProgress(items)
	assert.Equal(t, 100, p.Percent)
	assert.True(t, p.CanProceed)
}

func TestComputeProgressWithoutDefinedItems(t *testing.T) {
	p := ComputeProgress([]*LineItem{{Balance: 5}})
	assert.Equal(t, 0, p.Percent)
	assert.False(t, p.CanProceed)
}

func TestNormalizeBuildsKey(t *testing.T) {
	o := &Order{Contract: " 123 ", Load: "7", Work: "OB1", Items: []*LineItem{{Code: "A1", Balance: 3}}}
	require.NoError(t, o.Normalize())
	assert.Equal(t, "123-7-OB1", o.Key)
	assert.Equal(t, "123-7-OB1", o.Items[0].OrderKey)

	assert.ErrorIs(t, (&Order{}).Normalize(), ErrOrderKeyRequired)
	assert.ErrorIs(t, (&Order{Key: "k", Items: []*LineItem{{}}}).Normalize(), ErrItemCodeRequired)
}
