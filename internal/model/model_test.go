package model_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/pos-billing/internal/model"
	"github.com/ginjaninja78/pos-billing/internal/validation"
)

func mustItem(t *testing.T, code string, internal, discount, sale float64, qty int) *model.Item {
	t.Helper()
	item, err := model.NewItem(code, internal, discount, sale, qty)
	require.NoError(t, err)
	return item
}

func TestItemLineTotal(t *testing.T) {
	cases := []struct {
		sale float64
		qty  int
	}{
		{2.0, 3},
		{0, 10},
		{19.99, 1},
		{0.1, 7},
	}
	for _, tc := range cases {
		item := mustItem(t, "SKU", 1, 0, tc.sale, tc.qty)
		assert.Equal(t, tc.sale*float64(tc.qty), item.LineTotal())
	}
}

func TestNewItemRejectsInvalidFields(t *testing.T) {
	_, err := model.NewItem("bad code", 1, 0, 1, 1)
	var ve *validation.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, validation.FieldItemCode, ve.Field)

	_, err = model.NewItem("SKU", -1, 0, 1, 1)
	require.Error(t, err)
	_, err = model.NewItem("SKU", 1, 101, 1, 1)
	require.Error(t, err)
	_, err = model.NewItem("SKU", 1, 0, -1, 1)
	require.Error(t, err)
	_, err = model.NewItem("SKU", 1, 0, 1, 0)
	require.Error(t, err)
}

func TestItemSettersValidate(t *testing.T) {
	item := mustItem(t, "SKU1", 1, 0, 2, 3)

	require.NoError(t, item.SetSalePrice(4))
	require.NoError(t, item.SetQuantity(5))
	require.NoError(t, item.SetDiscount(10))
	require.NoError(t, item.SetInternalPrice(1.5))
	require.NoError(t, item.SetItemCode("SKU2"))
	assert.Equal(t, 20.0, item.LineTotal())

	require.Error(t, item.SetQuantity(0))
	require.Error(t, item.SetSalePrice(-1))
	require.Error(t, item.SetDiscount(200))
	require.Error(t, item.SetItemCode(""))
	assert.Equal(t, 5, item.Quantity())
	assert.Equal(t, 4.0, item.SalePrice())
	assert.Equal(t, "SKU2", item.ItemCode())
}

func TestItemToMap(t *testing.T) {
	m := mustItem(t, "SKU1", 1, 0, 2, 3).ToMap()
	assert.Equal(t, map[string]any{
		"item_code":      "SKU1",
		"internal_price": 1.0,
		"discount":       0.0,
		"sale_price":     2.0,
		"quantity":       3,
		"line_total":     6.0,
	}, m)
}

func TestBasketTotalTracksMutations(t *testing.T) {
	basket := model.NewBasket()
	assert.Equal(t, 0.0, basket.Total())

	a := mustItem(t, "A", 1, 0, 2.5, 2)
	b := mustItem(t, "B", 1, 0, 1.25, 4)
	c := mustItem(t, "C", 1, 0, 10, 1)
	basket.Add(a)
	basket.Add(b)
	basket.Add(c)
	assert.Equal(t, 20.0, basket.Total())

	require.NoError(t, basket.Update(1, mustItem(t, "B2", 1, 0, 3, 1)))
	assert.Equal(t, 18.0, basket.Total())

	require.NoError(t, a.SetQuantity(4))
	assert.Equal(t, 23.0, basket.Total())

	removed, err := basket.Delete(0)
	require.NoError(t, err)
	assert.Same(t, a, removed)
	assert.Equal(t, 13.0, basket.Total())

	first, err := basket.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "B2", first.ItemCode())

	_, err = basket.Delete(0)
	require.NoError(t, err)
	_, err = basket.Delete(0)
	require.NoError(t, err)
	assert.True(t, basket.IsEmpty())
	assert.Equal(t, 0.0, basket.Total())
}

func TestBasketOutOfRangeLeavesBasketUnchanged(t *testing.T) {
	basket := model.NewBasket()
	basket.Add(mustItem(t, "A", 1, 0, 2, 1))

	for _, idx := range []int{-1, 1, 5} {
		_, err := basket.Delete(idx)
		require.ErrorIs(t, err, model.ErrIndexOutOfRange)

		var ie *model.IndexError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, 1, ie.Len)

		_, err = basket.Get(idx)
		require.ErrorIs(t, err, model.ErrIndexOutOfRange)
		require.ErrorIs(t, basket.Update(idx, mustItem(t, "X", 0, 0, 0, 1)), model.ErrIndexOutOfRange)
	}

	assert.Equal(t, 1, basket.Len())
	assert.Equal(t, 2.0, basket.Total())
}

func TestBasketClear(t *testing.T) {
	basket := model.NewBasket()
	basket.Add(mustItem(t, "A", 1, 0, 2, 1))
	basket.Clear()
	assert.Equal(t, 0, basket.Len())
	assert.Equal(t, "Basket is empty.", basket.String())
}

func TestBillSnapshotIsolation(t *testing.T) {
	basket := model.NewBasket()
	item := mustItem(t, "SKU1", 1, 0, 2, 3)
	basket.Add(item)
	before := basket.Total()

	now := time.Date(2025, 12, 31, 23, 59, 59, 987654321, time.Local)
	bill := model.NewBill("2512311", basket.Items(), now)
	basket.Clear()

	require.NoError(t, item.SetQuantity(100))
	require.NoError(t, item.SetSalePrice(50))

	assert.Equal(t, before, bill.GrandTotal())
	assert.Equal(t, 6.0, bill.GrandTotal())
	assert.Equal(t, 3, bill.Items()[0].Quantity())
	assert.True(t, basket.IsEmpty())

	copied := bill.Items()[0]
	require.NoError(t, copied.SetQuantity(9))
	assert.Equal(t, 3, bill.Items()[0].Quantity())

	assert.Equal(t, now.Truncate(time.Second), bill.Timestamp())
	assert.Equal(t, 0, bill.Timestamp().Nanosecond())
}

func TestFormatBillID(t *testing.T) {
	assert.Equal(t, "0007", model.FormatBillID("7"))
	assert.Equal(t, "0042", model.FormatBillID("42"))
	assert.Equal(t, "1234", model.FormatBillID("1234"))
	assert.Equal(t, "251231", model.FormatBillID("251231"))
	assert.Equal(t, "0007", model.NewBill("7", nil, time.Now()).ID())
}

func TestBillToMap(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	bill := model.NewBill("1", []*model.Item{mustItem(t, "SKU1", 1, 0, 2, 3)}, now)

	m := bill.ToMap()
	assert.Equal(t, "0001", m["bill_id"])
	assert.Equal(t, "2025-01-02 03:04:05", m["timestamp"])
	assert.Equal(t, 6.0, m["grand_total"])
	items, ok := m["items"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "SKU1", items[0]["item_code"])
}

func TestRegistryFindNumber(t *testing.T) {
	reg := model.NewRegistry()
	now := time.Now()
	reg.Append(model.NewBill("7", nil, now))
	reg.Append(model.NewBill("2512311", nil, now))

	bill, ok := reg.FindNumber(7)
	require.True(t, ok)
	assert.Equal(t, "0007", bill.ID())

	bill, ok = reg.FindNumber(2512311)
	require.True(t, ok)
	assert.Equal(t, "2512311", bill.ID())

	_, ok = reg.FindNumber(8)
	assert.False(t, ok)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, "0007", reg.All()[0].ID())
}

func TestRendering(t *testing.T) {
	basket := model.NewBasket()
	basket.Add(mustItem(t, "SKU1", 1, 0, 2, 3))

	lines := strings.Split(basket.String(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| 1    | SKU1           | 1.00           | 2.00         | 0.00       | 3        | 6.00         |", lines[3])
	for _, line := range lines {
		assert.Len(t, line, len(lines[0]))
	}

	bill := model.NewBill("9", basket.Items(), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	out := bill.String()
	assert.Contains(t, out, "Bill ID: 0009")
	assert.Contains(t, out, "Timestamp: 2025-01-02 03:04:05")
	assert.Contains(t, out, "Grand Total: 6.00")

	itemLines := strings.Split(basket.Items()[0].String(), "\n")
	require.Len(t, itemLines, 5)
	assert.True(t, strings.HasPrefix(itemLines[3], "| SKU1                  | 1.00"))
	assert.Equal(t, "No items in the bill.", model.NewBill("1", nil, time.Now()).String())
}
