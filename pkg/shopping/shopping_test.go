package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/storage"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(store), store
}

func TestAddAndListItems(t *testing.T) {
	s, _ := newTestService(t)

	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "Salt"}))
	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "Olive Oil"}))

	items, err := s.ListItems(42)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddMissingFromSuggestion(t *testing.T) {
	s, _ := newTestService(t)

	result := models.MatchResult{
		Recipe:       models.Recipe{Name: "Salsa"},
		MatchPercent: 66.67,
		Missing: []models.RecipeIngredient{
			{Name: "salt", Quantity: 1, Unit: "tsp"},
			{Name: "lime", Quantity: 2, Unit: "pcs"},
		},
	}

	added, err := s.AddMissing(42, result)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	items, err := s.ListItems(42)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := make(map[string]models.InventoryItem)
	for _, item := range items {
		byName[item.Name] = item
	}
	assert.Equal(t, 1.0, byName["salt"].Quantity)
	assert.Equal(t, "pcs", byName["lime"].Unit)
}

func TestAddMissingSkipsEmptyNames(t *testing.T) {
	s, _ := newTestService(t)

	result := models.MatchResult{
		Missing: []models.RecipeIngredient{
			{Name: "  "},
			{Name: "salt"},
		},
	}

	added, err := s.AddMissing(42, result)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestRemoveItem(t *testing.T) {
	s, _ := newTestService(t)

	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "Salt"}))
	require.NoError(t, s.RemoveItem(42, " salt "))

	items, err := s.ListItems(42)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetListPreservesUnreadableValue(t *testing.T) {
	s, store := newTestService(t)

	// A stored value that doesn't unmarshal into a ShoppingList must
	// surface as an error, not get replaced with an empty list
	require.NoError(t, store.Set(Key(42), "not a list"))

	_, err := s.GetList(42)
	require.Error(t, err)

	var raw string
	require.NoError(t, store.Get(Key(42), &raw))
	assert.Equal(t, "not a list", raw)
}

func TestListItemsSortedByName(t *testing.T) {
	s, _ := newTestService(t)

	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "salt"}))
	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "lime"}))
	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "avocado"}))

	items, err := s.ListItems(42)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "avocado", items[0].Name)
	assert.Equal(t, "lime", items[1].Name)
	assert.Equal(t, "salt", items[2].Name)
}

func TestClearList(t *testing.T) {
	s, _ := newTestService(t)

	require.NoError(t, s.AddItem(42, models.InventoryItem{Name: "Salt"}))
	require.NoError(t, s.ClearList(42))

	items, err := s.ListItems(42)
	require.NoError(t, err)
	assert.Empty(t, items)
}
