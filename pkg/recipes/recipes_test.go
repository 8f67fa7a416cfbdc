package recipes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// No LLM client: catalog CRUD does not touch it
	return New(store, nil)
}

func TestAddRecipeAssignsID(t *testing.T) {
	s := newTestService(t)

	added, err := s.AddRecipe(models.Recipe{
		Name:        "Salsa",
		Ingredients: []models.RecipeIngredient{{Name: "tomato"}, {Name: "onion"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.AddedAt.IsZero())
}

func TestAddRecipeRejectsEmptyName(t *testing.T) {
	s := newTestService(t)

	_, err := s.AddRecipe(models.Recipe{})
	assert.Error(t, err)
}

func TestGetRecipeRoundTrip(t *testing.T) {
	s := newTestService(t)

	added, err := s.AddRecipe(models.Recipe{
		Name:        "Salsa",
		Cuisine:     "Mexican",
		Ingredients: []models.RecipeIngredient{{Name: "tomato"}},
	})
	require.NoError(t, err)

	got, err := s.GetRecipe(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salsa", got.Name)
	assert.Equal(t, "Mexican", got.Cuisine)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "tomato", got.Ingredients[0].Name)
}

func TestGetRecipeNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.GetRecipe("missing")
	assert.Error(t, err)
}

func TestDeleteRecipe(t *testing.T) {
	s := newTestService(t)

	added, err := s.AddRecipe(models.Recipe{Name: "Salsa"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteRecipe(added.ID))

	_, err = s.GetRecipe(added.ID)
	assert.Error(t, err)
}

func TestListRecipesOrderedByAddedAt(t *testing.T) {
	s := newTestService(t)

	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		_, err := s.AddRecipe(models.Recipe{
			Name:    name,
			AddedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	recipes, err := s.ListRecipes()
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "first", recipes[0].Name)
	assert.Equal(t, "second", recipes[1].Name)
	assert.Equal(t, "third", recipes[2].Name)
}
