package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsable(t *testing.T) {
	assert.False(t, (*ProductInfo)(nil).Usable())
	assert.False(t, (&ProductInfo{Success: true}).Usable())
	assert.False(t, (&ProductInfo{IsProductPage: true}).Usable())
	assert.True(t, (&ProductInfo{Success: true, IsProductPage: true}).Usable())
}

func TestHasDiscount(t *testing.T) {
	assert.True(t, (&ProductInfo{Price: 19.95, OriginalPrice: 29.95}).HasDiscount())
	assert.False(t, (&ProductInfo{Price: 19.95}).HasDiscount(), "absent original price means no discount shown")
	assert.False(t, (&ProductInfo{Price: 29.95, OriginalPrice: 29.95}).HasDiscount())
}

func TestSetVariantsLastSelectedWins(t *testing.T) {
	p := NewProductInfo("https://example.com/p/1")
	p.SetVariants(VariantGroupSizes, []VariantOption{
		{Text: "S", Selected: true},
		{Text: "M"},
		{Text: "L", Selected: true},
	})

	sizes := p.Variants[VariantGroupSizes]
	require.Len(t, sizes, 3)
	assert.False(t, sizes[0].Selected)
	assert.True(t, sizes[2].Selected)

	selected, ok := p.SelectedVariant(VariantGroupSizes)
	require.True(t, ok)
	assert.Equal(t, "L", selected.Text)
}

func TestSetVariantsDeduplicatesText(t *testing.T) {
	p := NewProductInfo("https://example.com/p/1")
	p.SetVariants(VariantGroupColors, []VariantOption{
		{Text: "Black", Value: "rgb(0,0,0)"},
		{Text: "Black", Value: "rgb(1,1,1)"},
		{Text: "White"},
	})

	colors := p.Variants[VariantGroupColors]
	require.Len(t, colors, 2)
	assert.Equal(t, "rgb(0,0,0)", colors[0].Value, "first occurrence kept")
}

func TestSetVariantsEmptyGroupIgnored(t *testing.T) {
	p := NewProductInfo("https://example.com/p/1")
	p.SetVariants(VariantGroupSizes, nil)
	assert.Nil(t, p.Variants)
}
