// Package potluck holds the event and RSVP model together with the pure
// view and permission functions computed over store snapshots.
//
// Nothing in this package performs I/O or returns errors: every function is
// total over any record shape the store may hand back.
package potluck

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryAppetizer Category = "Appetizer"
	CategoryMainDish  Category = "Main Dish"
	CategorySideDish  Category = "Side Dish"
	CategoryDessert   Category = "Dessert"
	CategoryDrink     Category = "Drink"
	CategoryOther     Category = "Other"
)

// Categories lists the dish categories in display order.
var Categories = []Category{
	CategoryAppetizer,
	CategoryMainDish,
	CategorySideDish,
	CategoryDessert,
	CategoryDrink,
	CategoryOther,
}

func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if string(known) == c {
			return true
		}
	}
	return false
}

type Dish struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Recipe   string `json:"recipe,omitempty"`
}

// Item is one RSVP. Name, Category and Recipes carry the legacy single-dish
// shape and are only populated for records that were never rewritten.
type Item struct {
	ID         string `json:"id"`
	Person     string `json:"person"`
	GuestCount int    `json:"guestCount"`
	UserID     string `json:"userId,omitempty"`
	Dishes     []Dish `json:"dishes,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  int64  `json:"createdAt,omitempty"`
	UpdatedAt  int64  `json:"updatedAt,omitempty"`

	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
	Recipes  string `json:"recipes,omitempty"`
}

type Event struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Host        string          `json:"host"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Location    string          `json:"location"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	IsPublic    bool            `json:"isPublic"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Items       map[string]Item `json:"items,omitempty"`
	CreatedAt   int64           `json:"createdAt,omitempty"`
	UpdatedAt   int64           `json:"updatedAt,omitempty"`
}

// SortedItems returns the event items ordered by creation time, then id.
func (e Event) SortedItems() []Item {
	items := make([]Item, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt < items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// EventFromRecord decodes a raw store value found at events/{id}. Fields of
// the wrong type are treated as absent.
func EventFromRecord(id string, raw any) Event {
	rec, _ := raw.(map[string]any)
	event := Event{
		ID:          id,
		Name:        asString(rec["name"]),
		Host:        asString(rec["host"]),
		Date:        asString(rec["date"]),
		Time:        asString(rec["time"]),
		Location:    asString(rec["location"]),
		Description: asString(rec["description"]),
		CreatedBy:   asString(rec["createdBy"]),
		ImageURL:    asString(rec["imageUrl"]),
		IsPublic:    true,
		CreatedAt:   asInt64(rec["createdAt"]),
		UpdatedAt:   asInt64(rec["updatedAt"]),
	}
	if b, ok := rec["isPublic"].(bool); ok {
		event.IsPublic = b
	}

	if items, ok := rec["items"].(map[string]any); ok && len(items) > 0 {
		event.Items = make(map[string]Item, len(items))
		for itemID, itemRaw := range items {
			if _, ok := itemRaw.(map[string]any); !ok {
				continue
			}
			event.Items[itemID] = ItemFromRecord(itemID, itemRaw)
		}
	}
	return event
}

// ItemFromRecord decodes a raw store value found at events/{id}/items/{itemId}.
func ItemFromRecord(id string, raw any) Item {
	rec, _ := raw.(map[string]any)
	item := Item{
		ID:         id,
		Person:     asString(rec["person"]),
		GuestCount: int(asInt64(rec["guestCount"])),
		UserID:     asString(rec["userId"]),
		Notes:      asString(rec["notes"]),
		CreatedAt:  asInt64(rec["createdAt"]),
		UpdatedAt:  asInt64(rec["updatedAt"]),
		Name:       asString(rec["name"]),
		Category:   asString(rec["category"]),
		Recipes:    asString(rec["recipes"]),
	}

	for _, dishRaw := range asList(rec["dishes"]) {
		d, ok := dishRaw.(map[string]any)
		if !ok {
			continue
		}
		recipe := asString(d["recipe"])
		if recipe == "" {
			recipe = asString(d["recipes"])
		}
		item.Dishes = append(item.Dishes, Dish{
			Name:     asString(d["name"]),
			Category: asString(d["category"]),
			Recipe:   recipe,
		})
	}
	return item
}

// Record renders the event detail fields for a store write. Items are
// written separately under their own paths.
func (e Event) Record() map[string]any {
	rec := map[string]any{
		"name":      e.Name,
		"host":      e.Host,
		"date":      e.Date,
		"time":      e.Time,
		"location":  e.Location,
		"isPublic":  e.IsPublic,
		"createdAt": e.CreatedAt,
		"updatedAt": e.UpdatedAt,
	}
	if e.Description != "" {
		rec["description"] = e.Description
	}
	if e.CreatedBy != "" {
		rec["createdBy"] = e.CreatedBy
	}
	if e.ImageURL != "" {
		rec["imageUrl"] = e.ImageURL
	}
	return rec
}

// Record renders the item in the current dishes shape. Legacy inline fields
// are never written back.
func (i Item) Record() map[string]any {
	dishes := make([]any, 0, len(i.Dishes))
	for _, d := range i.Dishes {
		dish := map[string]any{
			"name":     d.Name,
			"category": d.Category,
		}
		if d.Recipe != "" {
			dish["recipe"] = d.Recipe
		}
		dishes = append(dishes, dish)
	}

	rec := map[string]any{
		"person":     i.Person,
		"guestCount": EffectiveGuestCount(i.GuestCount),
		"dishes":     dishes,
		"createdAt":  i.CreatedAt,
		"updatedAt":  i.UpdatedAt,
	}
	if i.UserID != "" {
		rec["userId"] = i.UserID
	}
	if i.Notes != "" {
		rec["notes"] = i.Notes
	}
	return rec
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int64:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int64(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return 0
			}
			return asInt64(f)
		}
		return n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// asList accepts both a JSON array and an index-keyed object, which is how
// sparse arrays come back from the store.
func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, aerr := strconv.Atoi(keys[i])
			b, berr := strconv.Atoi(keys[j])
			if aerr == nil && berr == nil {
				return a < b
			}
			return keys[i] < keys[j]
		})
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, t[k])
		}
		return out
	default:
		return nil
	}
}
