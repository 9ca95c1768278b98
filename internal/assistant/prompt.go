package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/organizer"
)

const stylistPreamble = `You are a personal wardrobe stylist. You help the user build outfits,
make the most of the clothes they already own, and decide what to wear
for upcoming occasions. Ground every suggestion in the wardrobe data
below; never invent items the user does not own. Be concise and
concrete.`

// BuildSystemPrompt renders the current wardrobe state into the system
// prompt: the full item list, saved outfits, the 10 most recent wears,
// and the 5 least-worn items.
func BuildSystemPrompt(items []domain.WardrobeItem, outfits []domain.Outfit, wearLogs []domain.WearLogEntry, now time.Time) string {
	byID := make(map[string]domain.WardrobeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var itemLines []string
	for _, item := range items {
		line := fmt.Sprintf("- %s (%s, %s, seasons: %s", item.Name, item.Category, item.Color, joinSeasons(item.Seasons))
		if item.Brand != "" {
			line += ", brand: " + item.Brand
		}
		itemLines = append(itemLines, line+")")
	}

	var outfitLines []string
	for _, outfit := range outfits {
		var names []string
		for _, oi := range outfit.Items {
			if item, ok := byID[oi.ItemID]; ok {
				names = append(names, item.Name)
			} else {
				names = append(names, "Unknown item")
			}
		}
		outfitLines = append(outfitLines, fmt.Sprintf("- %s: %s", outfit.Name, strings.Join(names, ", ")))
	}

	recent := make([]domain.WearLogEntry, len(wearLogs))
	copy(recent, wearLogs)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > 10 {
		recent = recent[:10]
	}
	var wearLines []string
	for _, log := range recent {
		var names []string
		for _, id := range log.ItemIDs {
			if item, ok := byID[id]; ok {
				names = append(names, item.Name)
			} else {
				names = append(names, "Unknown")
			}
		}
		wearLines = append(wearLines, fmt.Sprintf("- %s: %s", log.Date, strings.Join(names, ", ")))
	}

	type counted struct {
		item  domain.WardrobeItem
		count int
	}
	counts := make([]counted, 0, len(items))
	for _, item := range items {
		counts = append(counts, counted{item, organizer.WearCount(item.ID, wearLogs)})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count < counts[j].count })
	if len(counts) > 5 {
		counts = counts[:5]
	}
	var leastLines []string
	for _, c := range counts {
		leastLines = append(leastLines, fmt.Sprintf("- %s: worn %d times", c.item.Name, c.count))
	}

	return fmt.Sprintf(`%s

## User's Wardrobe (%d items)
%s

## Saved Outfits (%d)
%s

## Recent Wear History
%s

## Least Worn Items
%s

Current date: %s`,
		stylistPreamble,
		len(items), section(itemLines, "No items yet"),
		len(outfits), section(outfitLines, "No outfits saved yet"),
		section(wearLines, "No wear history yet"),
		section(leastLines, "No data yet"),
		now.Format("2006-01-02"))
}

func section(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	return strings.Join(lines, "\n")
}

func joinSeasons(seasons []domain.Season) string {
	parts := make([]string, len(seasons))
	for i, s := range seasons {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
