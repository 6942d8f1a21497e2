package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validProduct() *Product {
	return &Product{
		Model:     gorm.Model{ID: 42},
		Name:      "Air Zoom Pegasus",
		Slug:      "air-zoom-pegasus",
		Brand:     "Nike",
		SellPrice: decimal.NewFromInt(100),
		Sizes:     []string{"9", "10"},
		Images: []ProductImage{
			{ProductID: 42, URL: "https://cdn.example.com/pegasus-1.jpg"},
			{ProductID: 42, URL: "https://cdn.example.com/pegasus-2.jpg"},
		},
	}
}

func TestNewSnapshot(t *testing.T) {
	snap, err := NewSnapshot(validProduct())
	require.NoError(t, err)

	assert.Equal(t, "42", snap.ProductID)
	assert.Equal(t, "Air Zoom Pegasus", snap.Name)
	assert.True(t, snap.SellPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "https://cdn.example.com/pegasus-1.jpg", snap.Image)
	assert.Equal(t, "air-zoom-pegasus", snap.Slug)
}

func TestNewSnapshotRejectsIncompleteProduct(t *testing.T) {
	_, err := NewSnapshot(nil)
	assert.ErrorIs(t, err, ErrMissingProductID)

	p := validProduct()
	p.ID = 0
	_, err = NewSnapshot(p)
	assert.ErrorIs(t, err, ErrMissingProductID)

	p = validProduct()
	p.Name = ""
	_, err = NewSnapshot(p)
	assert.ErrorIs(t, err, ErrMissingProductName)

	p = validProduct()
	p.SellPrice = decimal.Zero
	_, err = NewSnapshot(p)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)
}

func TestSnapshotWithoutImages(t *testing.T) {
	p := validProduct()
	p.Images = nil

	snap, err := NewSnapshot(p)
	require.NoError(t, err)
	assert.Empty(t, snap.Image)
}

func TestSnapshotHasSize(t *testing.T) {
	snap, err := NewSnapshot(validProduct())
	require.NoError(t, err)

	assert.True(t, snap.HasSize("9"))
	assert.False(t, snap.HasSize("13"))
}
