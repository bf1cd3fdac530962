package services_test

import (
	"fmt"
	"testing"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newRecipeServiceForTest() (*services.RecipeService, *MockRecipeRepository, *MockTagRepository, *MockIngredientRepository, *MockImageStore, *MockEventPublisher) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	images := new(MockImageStore)
	publisher := new(MockEventPublisher)
	service := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, images, publisher)
	return service, recipeRepo, tagRepo, ingredientRepo, images, publisher
}

func TestRecipeService_Create(t *testing.T) {
	service, recipeRepo, tagRepo, ingredientRepo, _, publisher := newRecipeServiceForTest()

	tags := []models.Tag{{Model: gorm.Model{ID: 1}, Name: "Vegan", UserID: "u1"}}
	ingredients := []models.Ingredient{{Model: gorm.Model{ID: 2}, Name: "Salt", UserID: "u1"}}

	tagRepo.On("GetByIDs", []uint{1}).Return(tags, nil).Once()
	ingredientRepo.On("GetByIDs", []uint{2}).Return(ingredients, nil).Once()
	recipeRepo.On("Create", mock.AnythingOfType("*models.Recipe")).
		Run(func(args mock.Arguments) {
			recipe := args.Get(0).(*models.Recipe)
			recipe.ID = 7
		}).Return(nil).Once()
	publisher.On("PublishRecipeEvent", "recipe.created", mock.Anything).Return(nil).Once()

	recipe, err := service.Create("u1", services.CreateRecipeInput{
		Title:         "Dal",
		TimeMinutes:   25,
		Price:         4.50,
		TagIDs:        []uint{1},
		IngredientIDs: []uint{2},
	})

	assert.NoError(t, err)
	// Ownership is server-assigned from the caller identity.
	assert.Equal(t, "u1", recipe.UserID)
	assert.Equal(t, "Dal", recipe.Title)
	assert.Equal(t, tags, recipe.Tags)
	assert.Equal(t, ingredients, recipe.Ingredients)

	recipeRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
	ingredientRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRecipeService_Create_UnknownTag(t *testing.T) {
	service, recipeRepo, tagRepo, _, _, _ := newRecipeServiceForTest()

	// Only one of the two requested tags exists.
	tagRepo.On("GetByIDs", []uint{1, 99}).
		Return([]models.Tag{{Model: gorm.Model{ID: 1}, Name: "Vegan"}}, nil).Once()

	recipe, err := service.Create("u1", services.CreateRecipeInput{
		Title:       "Dal",
		TimeMinutes: 25,
		Price:       4.50,
		TagIDs:      []uint{1, 99},
	})

	assert.ErrorIs(t, err, services.ErrInvalidReference)
	assert.Nil(t, recipe)
	recipeRepo.AssertNotCalled(t, "Create", mock.Anything)
	tagRepo.AssertExpectations(t)
}

func TestRecipeService_Update_PartialKeepsRelations(t *testing.T) {
	service, recipeRepo, _, _, _, publisher := newRecipeServiceForTest()

	stored := &models.Recipe{Model: gorm.Model{ID: 7}, Title: "Old", TimeMinutes: 10, Price: 3, UserID: "u1"}
	recipeRepo.On("GetByUser", "u1", uint(7)).Return(stored, nil).Twice()

	// With no relation lists in the input, both association pointers stay
	// nil, so the repository leaves the join rows alone.
	recipeRepo.On("Update", mock.AnythingOfType("*models.Recipe"),
		(*[]models.Tag)(nil), (*[]models.Ingredient)(nil)).
		Run(func(args mock.Arguments) {
			recipe := args.Get(0).(*models.Recipe)
			assert.Equal(t, "New Title", recipe.Title)
			assert.Equal(t, 10, recipe.TimeMinutes)
		}).Return(nil).Once()
	publisher.On("PublishRecipeEvent", "recipe.updated", mock.Anything).Return(nil).Once()

	title := "New Title"
	_, err := service.Update("u1", 7, services.UpdateRecipeInput{Title: &title})

	assert.NoError(t, err)
	recipeRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRecipeService_Update_FullClearsRelations(t *testing.T) {
	service, recipeRepo, _, _, _, publisher := newRecipeServiceForTest()

	stored := &models.Recipe{Model: gorm.Model{ID: 7}, Title: "Old", UserID: "u1",
		Tags: []models.Tag{{Model: gorm.Model{ID: 1}, Name: "Vegan"}}}
	recipeRepo.On("GetByUser", "u1", uint(7)).Return(stored, nil).Twice()

	// An empty (non-nil) tag list means "replace with nothing".
	recipeRepo.On("Update", mock.AnythingOfType("*models.Recipe"),
		mock.MatchedBy(func(tags *[]models.Tag) bool {
			return tags != nil && len(*tags) == 0
		}),
		mock.MatchedBy(func(ingredients *[]models.Ingredient) bool {
			return ingredients != nil && len(*ingredients) == 0
		})).Return(nil).Once()
	publisher.On("PublishRecipeEvent", "recipe.updated", mock.Anything).Return(nil).Once()

	title := "New Title"
	minutes := 20
	price := 9.99
	link := ""
	emptyTags := []uint{}
	emptyIngredients := []uint{}
	_, err := service.Update("u1", 7, services.UpdateRecipeInput{
		Title:         &title,
		TimeMinutes:   &minutes,
		Price:         &price,
		Link:          &link,
		TagIDs:        &emptyTags,
		IngredientIDs: &emptyIngredients,
	})

	assert.NoError(t, err)
	recipeRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRecipeService_Update_NotOwned(t *testing.T) {
	service, recipeRepo, _, _, _, _ := newRecipeServiceForTest()

	recipeRepo.On("GetByUser", "u2", uint(7)).
		Return(nil, fmt.Errorf("recipe with ID 7: %w", repositories.ErrNotFound)).Once()

	title := "Stolen"
	recipe, err := service.Update("u2", 7, services.UpdateRecipeInput{Title: &title})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, recipe)
	recipeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_UploadImage(t *testing.T) {
	service, recipeRepo, _, _, images, _ := newRecipeServiceForTest()

	stored := &models.Recipe{Model: gorm.Model{ID: 7}, Title: "Dal", UserID: "u1"}
	recipeRepo.On("GetByUser", "u1", uint(7)).Return(stored, nil).Once()
	images.On("SaveRecipeImage", []byte("png-bytes"), "photo.png").
		Return("recipe-images/abc.png", nil).Once()
	recipeRepo.On("Update", mock.AnythingOfType("*models.Recipe"),
		(*[]models.Tag)(nil), (*[]models.Ingredient)(nil)).Return(nil).Once()

	recipe, err := service.UploadImage("u1", 7, []byte("png-bytes"), "photo.png")

	assert.NoError(t, err)
	assert.Equal(t, "recipe-images/abc.png", recipe.Image)
	recipeRepo.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestRecipeService_UploadImage_InvalidPayload(t *testing.T) {
	service, recipeRepo, _, _, images, _ := newRecipeServiceForTest()

	stored := &models.Recipe{Model: gorm.Model{ID: 7}, Title: "Dal", UserID: "u1"}
	recipeRepo.On("GetByUser", "u1", uint(7)).Return(stored, nil).Once()
	images.On("SaveRecipeImage", []byte("junk"), "note.txt").
		Return("", fmt.Errorf("payload is not a supported image")).Once()

	recipe, err := service.UploadImage("u1", 7, []byte("junk"), "note.txt")

	assert.Error(t, err)
	assert.Nil(t, recipe)
	// A rejected payload must not mutate the recipe.
	recipeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	images.AssertExpectations(t)
}

func TestRecipeService_List(t *testing.T) {
	service, recipeRepo, _, _, _, _ := newRecipeServiceForTest()

	expected := []models.Recipe{{Model: gorm.Model{ID: 2}}, {Model: gorm.Model{ID: 1}}}
	recipeRepo.On("ListByUser", "u1", []uint{1}, []uint{2}).Return(expected, nil).Once()

	recipes, err := service.List("u1", []uint{1}, []uint{2})
	assert.NoError(t, err)
	assert.Equal(t, expected, recipes)
	recipeRepo.AssertExpectations(t)
}
