package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_Replace_And_FindByID(t *testing.T) {
	// given
	store := NewStore()
	assert.Equal(t, 0, store.Len())

	// when
	store.Replace(testCatalog())

	// then
	assert.Equal(t, 5, store.Len())
	found, err := store.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Powder Canister", found.Title)

	_, err = store.FindByID(99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func Test_Store_Snapshot_IsACopy(t *testing.T) {
	store := NewStore()
	store.Replace(testCatalog())

	snapshot, gen := store.Snapshot()
	snapshot[0].Title = "mutated"

	unchanged, _ := store.FindByID(1)
	assert.Equal(t, "Essence Mascara", unchanged.Title)
	assert.Equal(t, uint64(1), gen)
}

func Test_Service_View(t *testing.T) {
	// given
	store := NewStore()
	store.Replace(testCatalog())
	service := NewService(store)

	// when
	view := service.View(context.Background(), ViewQuery{Category: "beauty", Sort: SortPriceAsc})

	// then
	assert.Equal(t, 3, view.Shown)
	assert.Equal(t, 5, view.Total)
	require.Len(t, view.Products, 3)
	assert.Equal(t, int64(1), view.Products[0].ID)
}

func Test_Service_View_MemoInvalidatedByReplace(t *testing.T) {
	// given
	store := NewStore()
	store.Replace(testCatalog())
	service := NewService(store)
	query := ViewQuery{Category: AllCategories, Sort: SortDefault}

	first := service.View(context.Background(), query)
	cached := service.View(context.Background(), query)
	assert.Equal(t, first, cached)

	// when: the catalog is replaced
	store.Replace(testCatalog()[:2])

	// then: the memoized view does not go stale
	refreshed := service.View(context.Background(), query)
	assert.Equal(t, 2, refreshed.Shown)
	assert.Equal(t, 2, refreshed.Total)
}

func Test_Service_CategoryOverview(t *testing.T) {
	store := NewStore()
	store.Replace(testCatalog())
	service := NewService(store)

	overview := service.CategoryOverview(context.Background())

	require.Len(t, overview, 2)
	assert.Equal(t, "beauty", overview[0].Category)
	assert.Equal(t, 3, overview[0].Count)
	require.NotNil(t, overview[0].Sample)
	assert.Equal(t, int64(1), overview[0].Sample.ID)
	assert.Equal(t, "furniture", overview[1].Category)
	assert.Equal(t, 2, overview[1].Count)
}

func Test_Service_Deals(t *testing.T) {
	store := NewStore()
	store.Replace(testCatalog())
	service := NewService(store)

	deals := service.Deals(context.Background())

	// only IDs 3 (18.14) and 5 (18.54) are close; neither reaches 20
	assert.Equal(t, 0, deals.Summary.Total)
	assert.Empty(t, deals.Products)
}

func Test_Service_EmptyCatalog(t *testing.T) {
	service := NewService(NewStore())

	view := service.View(context.Background(), ViewQuery{Search: "anything"})
	assert.Equal(t, 0, view.Shown)
	assert.Equal(t, 0, view.Total)
	assert.Empty(t, service.Categories(context.Background()))
}
