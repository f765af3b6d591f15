package potluck

import (
	"sort"
	"strings"
	"time"
)

const NoDishSpecified = "No dish specified"

type Totals struct {
	ItemCount  int `json:"itemCount"`
	GuestCount int `json:"guestCount"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PartitionByTime splits events into upcoming and past relative to now.
// Input order is preserved within each side.
func PartitionByTime(events []Event, now time.Time) (upcoming, past []Event) {
	upcoming = []Event{}
	past = []Event{}
	for _, e := range events {
		if IsEventPast(e.Date, now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past
}

// SortByDate orders events by ascending date in place. Unparseable dates
// sort last, ties fall back to the event id.
func SortByDate(events []Event, loc *time.Location) {
	sort.SliceStable(events, func(i, j int) bool {
		a, aok := ParseEventDate(events[i].Date, loc)
		b, bok := ParseEventDate(events[j].Date, loc)
		switch {
		case aok && bok && !a.Equal(b):
			return a.Before(b)
		case aok != bok:
			return aok
		default:
			return events[i].ID < events[j].ID
		}
	})
}

// CountDishesByCategory counts canonical dishes whose category equals
// category exactly.
func CountDishesByCategory(items []Item, category string) int {
	count := 0
	for _, item := range items {
		for _, d := range CanonicalDishes(item) {
			if d.Category == category {
				count++
			}
		}
	}
	return count
}

// CategoryCounts counts every canonical dish under its own category, known
// or not, so the values always sum to the total dish count.
func CategoryCounts(items []Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		for _, d := range CanonicalDishes(item) {
			counts[d.Category]++
		}
	}
	return counts
}

// CategoryTabs returns the enumerated categories with their counts, in
// display order.
func CategoryTabs(items []Item) []CategoryCount {
	tabs := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		tabs = append(tabs, CategoryCount{
			Category: string(c),
			Count:    CountDishesByCategory(items, string(c)),
		})
	}
	return tabs
}

// FilterItemsByCategory keeps items with at least one dish in category. An
// empty category or "All" keeps everything.
func FilterItemsByCategory(items []Item, category string) []Item {
	if category == "" || strings.EqualFold(category, "all") {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		for _, d := range CanonicalDishes(item) {
			if d.Category == category {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func EffectiveGuestCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// AggregateEventTotals counts dishes, not RSVPs, for ItemCount.
func AggregateEventTotals(event Event) Totals {
	var totals Totals
	for _, item := range event.Items {
		totals.ItemCount += len(CanonicalDishes(item))
		totals.GuestCount += EffectiveGuestCount(item.GuestCount)
	}
	return totals
}

// FormatDishList joins names as an English list with an Oxford comma.
func FormatDishList(names []string) string {
	switch len(names) {
	case 0:
		return NoDishSpecified
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
