package potluck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDishes(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want []Dish
	}{
		{
			name: "current shape filters incomplete dishes",
			item: Item{Dishes: []Dish{
				{Name: "Chili", Category: "Main Dish"},
				{Name: "", Category: "Dessert"},
				{Name: "Salad", Category: " "},
				{Name: "Punch", Category: "Drink", Recipe: "mix"},
			}},
			want: []Dish{
				{Name: "Chili", Category: "Main Dish"},
				{Name: "Punch", Category: "Drink", Recipe: "mix"},
			},
		},
		{
			name: "legacy inline dish",
			item: Item{Name: "Pie", Category: "Dessert", Recipes: "grandma's"},
			want: []Dish{{Name: "Pie", Category: "Dessert", Recipe: "grandma's"}},
		},
		{
			name: "dishes list wins over legacy fields",
			item: Item{Name: "Pie", Category: "Dessert", Dishes: []Dish{{Name: "Chili", Category: "Main Dish"}}},
			want: []Dish{{Name: "Chili", Category: "Main Dish"}},
		},
		{
			name: "legacy without category yields nothing",
			item: Item{Name: "Pie"},
			want: []Dish{},
		},
		{
			name: "empty item",
			item: Item{},
			want: []Dish{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalDishes(tt.item))
		})
	}
}

func TestCanonicalizeIsStable(t *testing.T) {
	items := []Item{
		{Name: "Pie", Category: "Dessert", Recipes: "r"},
		{Dishes: []Dish{{Name: "Chili", Category: "Main Dish"}, {Name: "x"}}},
		{Person: "nobody"},
	}
	for _, item := range items {
		canonical := Canonicalize(item)
		assert.Equal(t, CanonicalDishes(item), CanonicalDishes(canonical))
		assert.False(t, IsLegacy(canonical))
		assert.Equal(t, canonical, Canonicalize(canonical))
	}
}

func TestItemFromRecordTolerance(t *testing.T) {
	item := ItemFromRecord("i1", map[string]any{
		"person":     "A",
		"guestCount": "3",
		"dishes": map[string]any{
			"1": map[string]any{"name": "Pie", "category": "Dessert", "recipes": "old"},
			"0": map[string]any{"name": "Chili", "category": "Main Dish"},
			"2": "garbage",
		},
	})
	assert.Equal(t, 3, item.GuestCount)
	assert.Equal(t, []Dish{
		{Name: "Chili", Category: "Main Dish"},
		{Name: "Pie", Category: "Dessert", Recipe: "old"},
	}, item.Dishes)

	empty := ItemFromRecord("i2", 42)
	assert.Equal(t, "i2", empty.ID)
	assert.Empty(t, CanonicalDishes(empty))
}

func TestEventFromRecordDefaults(t *testing.T) {
	event := EventFromRecord("abc", map[string]any{
		"name":  "Picnic",
		"items": map[string]any{"bad": true, "ok": map[string]any{"person": "B"}},
	})
	assert.True(t, event.IsPublic)
	assert.Len(t, event.Items, 1)
	assert.Equal(t, "B", event.Items["ok"].Person)

	private := EventFromRecord("abc", map[string]any{"isPublic": false})
	assert.False(t, private.IsPublic)
}

func TestItemRecordWritesCurrentShape(t *testing.T) {
	rec := Canonicalize(Item{Person: "B", Name: "Pie", Category: "Dessert", Recipes: "r"}).Record()
	assert.NotContains(t, rec, "name")
	assert.NotContains(t, rec, "recipes")
	assert.Equal(t, 1, rec["guestCount"])

	back := ItemFromRecord("x", rec)
	assert.Equal(t, []Dish{{Name: "Pie", Category: "Dessert", Recipe: "r"}}, CanonicalDishes(back))
}
