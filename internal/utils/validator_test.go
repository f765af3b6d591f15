package utils

import (
	"testing"

	"Potluck-Backend/domain"

	"github.com/stretchr/testify/assert"
)

func TestDishCategoryValidation(t *testing.T) {
	InitValidator()

	ok := domain.CreateItemRequest{
		Person: "Ada",
		Dishes: []domain.DishRequest{{Name: "Chili", Category: "Main Dish"}},
	}
	assert.NoError(t, Validate.Struct(ok))

	unknown := ok
	unknown.Dishes = []domain.DishRequest{{Name: "Chili", Category: "Soup"}}
	assert.Error(t, Validate.Struct(unknown))

	empty := ok
	empty.Dishes = nil
	assert.Error(t, Validate.Struct(empty))
}

func TestGetConfigDefaults(t *testing.T) {
	assert.Equal(t, "0 0 * * *", GetConfig("ROLLOVER_CRON"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
	assert.NotNil(t, Location())
}
