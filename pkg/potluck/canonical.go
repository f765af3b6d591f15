package potluck

import "strings"

// CanonicalDishes is the single read path for dish data. A non-empty dishes
// list wins and is filtered to entries with both a name and a category;
// otherwise the legacy inline name/category pair yields one dish.
func CanonicalDishes(item Item) []Dish {
	if len(item.Dishes) > 0 {
		dishes := make([]Dish, 0, len(item.Dishes))
		for _, d := range item.Dishes {
			if blank(d.Name) || blank(d.Category) {
				continue
			}
			dishes = append(dishes, d)
		}
		return dishes
	}

	if !blank(item.Name) && !blank(item.Category) {
		return []Dish{{
			Name:     item.Name,
			Category: item.Category,
			Recipe:   item.Recipes,
		}}
	}
	return []Dish{}
}

// IsLegacy reports whether the item is still stored in the inline
// single-dish shape.
func IsLegacy(item Item) bool {
	return len(item.Dishes) == 0 && (item.Name != "" || item.Category != "" || item.Recipes != "")
}

// Canonicalize returns a copy of item in the current shape.
func Canonicalize(item Item) Item {
	out := item
	out.Dishes = CanonicalDishes(item)
	out.Name = ""
	out.Category = ""
	out.Recipes = ""
	return out
}

// DishNames returns the names of the canonical dishes of item.
func DishNames(item Item) []string {
	dishes := CanonicalDishes(item)
	names := make([]string, 0, len(dishes))
	for _, d := range dishes {
		names = append(names, d.Name)
	}
	return names
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
