package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	catalog "github.com/solestride/storefront/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id string, price int64) catalog.Snapshot {
	return catalog.Snapshot{
		ProductID: id,
		Name:      "Runner " + id,
		SellPrice: decimal.NewFromInt(price),
		Image:     "x",
		Slug:      "runner-" + id,
	}
}

// 每次变更后 Count 必须等于重新累加的数量之和
func assertCountInvariant(t *testing.T, c *Cart) {
	t.Helper()
	sum := 0
	for _, item := range c.Items {
		sum += item.Quantity
	}
	assert.Equal(t, sum, c.Count)
}

func TestAddItemScenario(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 2))

	require.Len(t, c.Items, 1)
	assert.Equal(t, "A1", c.Items[0].ProductID)
	assert.Equal(t, "9", c.Items[0].SelectedSize)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, c.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, c.Count)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(200)))
	assertCountInvariant(t, c)
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("P", 50), "9", 2))
	require.NoError(t, c.AddItem(snapshot("P", 50), "9", 3))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.Count)
	assertCountInvariant(t, c)
}

func TestAddItemDistinctSizesDoNotMerge(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("P", 50), "9", 1))
	require.NoError(t, c.AddItem(snapshot("P", 50), "10", 1))

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Count)
	assertCountInvariant(t, c)
}

func TestAddItemValidation(t *testing.T) {
	c := NewCart()

	assert.ErrorIs(t, c.AddItem(snapshot("P", 50), "9", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(catalog.Snapshot{}, "9", 1), ErrMissingProductID)
	assert.ErrorIs(t, c.AddItem(snapshot("P", 50), "", 1), ErrMissingSelectedSize)

	// 校验失败不得留下半应用状态
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Count)
}

func TestRemoveOnlyItemDrivesTotalsToZero(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 3))

	c.RemoveItem("A1", "9")

	assert.Empty(t, c.Items)
	assert.Zero(t, c.Count)
	assert.True(t, c.Total().IsZero())
	assertCountInvariant(t, c)
}

func TestRemoveMissingItemIsNoop(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 2))

	c.RemoveItem("A1", "10")
	c.RemoveItem("B2", "9")

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Count)
	assertCountInvariant(t, c)
}

func TestUpdateQuantityAdjustsCountByDelta(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 2))

	require.NoError(t, c.UpdateQuantity("A1", "9", 5))

	assert.Equal(t, 5, c.Count)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(500)))
	assertCountInvariant(t, c)

	require.NoError(t, c.UpdateQuantity("A1", "9", 1))
	assert.Equal(t, 1, c.Count)
	assertCountInvariant(t, c)
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 2))

	assert.ErrorIs(t, c.UpdateQuantity("A1", "9", 0), ErrInvalidQuantity)
	assert.Equal(t, 2, c.Count)
}

func TestClear(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 2))
	require.NoError(t, c.AddItem(snapshot("B2", 80), "10", 1))

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Zero(t, c.Count)
	assert.True(t, c.Total().IsZero())
}

func TestCountInvariantUnderMutationSequence(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A", 10), "8", 1))
	assertCountInvariant(t, c)
	require.NoError(t, c.AddItem(snapshot("B", 20), "9", 4))
	assertCountInvariant(t, c)
	require.NoError(t, c.AddItem(snapshot("A", 10), "8", 2))
	assertCountInvariant(t, c)
	require.NoError(t, c.UpdateQuantity("B", "9", 2))
	assertCountInvariant(t, c)
	c.RemoveItem("A", "8")
	assertCountInvariant(t, c)
	require.NoError(t, c.AddItem(snapshot("C", 5), "7", 6))
	assertCountInvariant(t, c)
	c.Clear()
	assertCountInvariant(t, c)
}

func TestInsertionOrderIsDisplayOrder(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("B", 20), "9", 1))
	require.NoError(t, c.AddItem(snapshot("A", 10), "8", 1))
	require.NoError(t, c.AddItem(snapshot("B", 20), "9", 1)) // 合并，不改变顺序

	require.Len(t, c.Items, 2)
	assert.Equal(t, "B", c.Items[0].ProductID)
	assert.Equal(t, "A", c.Items[1].ProductID)
}

func TestCloneIsDetached(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddItem(snapshot("A1", 100), "9", 2))

	clone := c.Clone()
	clone.Items[0].Quantity = 99
	clone.Count = 99

	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, c.Count)
}
