package organizer

import (
	"sort"

	"github.com/closetd/closetd/internal/domain"
)

type WearCountEntry struct {
	Item  domain.WardrobeItem `json:"item"`
	Count int                 `json:"count"`
}

type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

type Stats struct {
	TotalItems        int                   `json:"totalItems"`
	TotalOutfits      int                   `json:"totalOutfits"`
	TotalWears        int                   `json:"totalWears"`
	MostWorn          []WearCountEntry      `json:"mostWorn"`
	LeastWorn         []WearCountEntry      `json:"leastWorn"`
	NeverWorn         []domain.WardrobeItem `json:"neverWorn"`
	NeverWornCount    int                   `json:"neverWornCount"`
	CategoryBreakdown []CategoryCount       `json:"categoryBreakdown"`
}

// ComputeStats summarizes wear history for the stats page. MostWorn and
// LeastWorn hold up to five items each and only items worn at least once;
// items never worn are listed separately.
func ComputeStats(items []domain.WardrobeItem, outfits []domain.Outfit, wearLogs []domain.WearLogEntry) Stats {
	counts := make([]WearCountEntry, 0, len(items))
	for _, item := range items {
		counts = append(counts, WearCountEntry{Item: item, Count: WearCount(item.ID, wearLogs)})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	var worn []WearCountEntry
	neverWorn := []domain.WardrobeItem{}
	for _, c := range counts {
		if c.Count > 0 {
			worn = append(worn, c)
		} else {
			neverWorn = append(neverWorn, c.Item)
		}
	}

	mostWorn := worn
	if len(mostWorn) > 5 {
		mostWorn = mostWorn[:5]
	}

	var leastWorn []WearCountEntry
	for i := len(worn) - 1; i >= 0 && len(leastWorn) < 5; i-- {
		leastWorn = append(leastWorn, worn[i])
	}

	categoryTotals := map[domain.Category]int{}
	for _, item := range items {
		categoryTotals[item.Category]++
	}
	breakdown := make([]CategoryCount, 0, len(categoryTotals))
	for category, count := range categoryTotals {
		breakdown = append(breakdown, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return Stats{
		TotalItems:        len(items),
		TotalOutfits:      len(outfits),
		TotalWears:        len(wearLogs),
		MostWorn:          mostWorn,
		LeastWorn:         leastWorn,
		NeverWorn:         neverWorn,
		NeverWornCount:    len(neverWorn),
		CategoryBreakdown: breakdown,
	}
}

type SpaceStats struct {
	ItemCount  int                     `json:"itemCount"`
	Categories map[domain.Category]int `json:"categories"`
}

// ComputeSpaceStats counts the items assigned to one storage space.
func ComputeSpaceStats(spaceID string, items []domain.WardrobeItem) SpaceStats {
	stats := SpaceStats{Categories: map[domain.Category]int{}}
	for _, item := range items {
		if item.StorageSpaceID != spaceID {
			continue
		}
		stats.ItemCount++
		stats.Categories[item.Category]++
	}
	return stats
}
