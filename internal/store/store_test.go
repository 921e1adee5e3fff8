package store

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/shoplens/internal/models"
)

func testProduct(sku, title string) *models.ProductInfo {
	return &models.ProductInfo{
		URL:           "https://www.zara.com/us/en/top-p" + sku + ".html",
		IsProductPage: true,
		Success:       true,
		Title:         title,
		Brand:         "Zara",
		SKU:           sku,
		Price:         19.95,
		Currency:      "EUR",
	}
}

func newTestCollection(t *testing.T, p Persistence) *Collection {
	t.Helper()
	return NewCollection(context.Background(), "cart", p, slog.Default())
}

func TestAddAndList(t *testing.T) {
	c := newTestCollection(t, NewMemoryPersistence())
	ctx := context.Background()

	require.True(t, c.Add(ctx, testProduct("111", "First")))
	require.True(t, c.Add(ctx, testProduct("222", "Second")))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
	assert.Equal(t, 2, c.Len())
}

func TestAddSameIdentityReplaces(t *testing.T) {
	c := newTestCollection(t, NewMemoryPersistence())
	ctx := context.Background()

	first := testProduct("111", "Top")
	first.Variants = map[string][]models.VariantOption{
		models.VariantGroupSizes: {{Text: "S", Selected: true}},
	}
	second := testProduct("111", "Top")
	second.Variants = map[string][]models.VariantOption{
		models.VariantGroupSizes: {{Text: "M", Selected: true}},
	}

	require.True(t, c.Add(ctx, first))
	require.True(t, c.Add(ctx, second))

	list := c.List()
	require.Len(t, list, 1, "same identity replaces, never duplicates")
	sizes := list[0].Variants[models.VariantGroupSizes]
	require.Len(t, sizes, 1)
	assert.Equal(t, "M", sizes[0].Text, "the newer snapshot wins")
}

func TestRemove(t *testing.T) {
	c := newTestCollection(t, NewMemoryPersistence())
	ctx := context.Background()

	p := testProduct("111", "Top")
	require.True(t, c.Add(ctx, p))

	removed, ok := c.Remove(ctx, p)
	assert.True(t, removed)
	assert.True(t, ok)
	assert.Equal(t, 0, c.Len())

	removed, ok = c.Remove(ctx, p)
	assert.False(t, removed, "removing an absent entry removes nothing")
	assert.True(t, ok, "and is not an error")
}

func TestContains(t *testing.T) {
	c := newTestCollection(t, NewMemoryPersistence())
	ctx := context.Background()

	p := testProduct("111", "Top")
	assert.False(t, c.Contains(p))
	require.True(t, c.Add(ctx, p))
	assert.True(t, c.Contains(p))

	differentSize := testProduct("111", "Top")
	differentSize.Variants = map[string][]models.VariantOption{
		models.VariantGroupSizes: {{Text: "L", Selected: true}},
	}
	assert.True(t, c.Contains(differentSize), "variant choice does not change identity")
}

func TestClear(t *testing.T) {
	c := newTestCollection(t, NewMemoryPersistence())
	ctx := context.Background()

	require.True(t, c.Add(ctx, testProduct("111", "First")))
	require.True(t, c.Add(ctx, testProduct("222", "Second")))
	require.True(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.List())
}

type failingPersistence struct {
	loadErr error
	saveErr error
}

func (f *failingPersistence) Load(context.Context) ([]models.ProductInfo, error) {
	return nil, f.loadErr
}

func (f *failingPersistence) Save(context.Context, []models.ProductInfo) error {
	return f.saveErr
}

func TestFailedSaveLeavesMemoryUntouched(t *testing.T) {
	c := newTestCollection(t, NewMemoryPersistence())
	ctx := context.Background()
	require.True(t, c.Add(ctx, testProduct("111", "Kept")))

	c.persistence = &failingPersistence{saveErr: errors.New("disk full")}

	assert.False(t, c.Add(ctx, testProduct("222", "Lost")))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "Kept", c.List()[0].Title)

	removed, ok := c.Remove(ctx, testProduct("111", "Kept"))
	assert.False(t, removed)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	assert.False(t, c.Clear(ctx))
	assert.Equal(t, 1, c.Len())
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	p := &failingPersistence{loadErr: errors.New("corrupt file")}
	c := newTestCollection(t, p)
	assert.Equal(t, 0, c.Len())
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cart.json")
	ctx := context.Background()

	c := newTestCollection(t, NewFilePersistence(filename))
	require.True(t, c.Add(ctx, testProduct("111", "First")))
	require.True(t, c.Add(ctx, testProduct("222", "Second")))

	reloaded := newTestCollection(t, NewFilePersistence(filename))
	list := reloaded.List()
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
}

func TestFilePersistenceMissingFileIsEmpty(t *testing.T) {
	p := NewFilePersistence(filepath.Join(t.TempDir(), "absent.json"))
	products, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
