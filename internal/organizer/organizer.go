// Package organizer computes closet-organization suggestions from the
// item and wear-log collections. Everything here is a pure function; the
// caller decides what to do with a suggestion.
package organizer

import (
	"fmt"
	"sort"
	"time"

	"github.com/closetd/closetd/internal/domain"
)

type SuggestionType string

const (
	SuggestionUnassigned SuggestionType = "unassigned"
	SuggestionSeasonal   SuggestionType = "seasonal"
	SuggestionFrequency  SuggestionType = "frequency"
	SuggestionUnworn     SuggestionType = "unworn"
	SuggestionColor      SuggestionType = "color"
)

type Suggestion struct {
	ID              string                `json:"id"`
	Type            SuggestionType        `json:"type"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Icon            string                `json:"icon"`
	Items           []domain.WardrobeItem `json:"items"`
	SuggestedAction string                `json:"suggestedAction,omitempty"`
}

// CurrentSeason maps the calendar month to a season on fixed quarterly
// boundaries: Mar-May spring, Jun-Aug summer, Sep-Nov fall, else winter.
func CurrentSeason(now time.Time) domain.Season {
	switch m := now.Month(); {
	case m >= time.March && m <= time.May:
		return domain.SeasonSpring
	case m >= time.June && m <= time.August:
		return domain.SeasonSummer
	case m >= time.September && m <= time.November:
		return domain.SeasonFall
	default:
		return domain.SeasonWinter
	}
}

// WearCount counts the wear-log entries that reference itemID.
func WearCount(itemID string, wearLogs []domain.WearLogEntry) int {
	count := 0
	for _, log := range wearLogs {
		for _, id := range log.ItemIDs {
			if id == itemID {
				count++
				break
			}
		}
	}
	return count
}

// LastWorn returns the most recent wear date for itemID, or ok=false if
// it was never worn.
func LastWorn(itemID string, wearLogs []domain.WearLogEntry) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, log := range wearLogs {
		for _, id := range log.ItemIDs {
			if id != itemID {
				continue
			}
			d, err := time.Parse("2006-01-02", log.Date)
			if err != nil {
				break
			}
			if !found || d.After(latest) {
				latest = d
				found = true
			}
			break
		}
	}
	return latest, found
}

// GenerateSuggestions computes the suggestion list in fixed order. The
// same inputs always produce the same output; now is injected so season
// and recency cutoffs are deterministic.
func GenerateSuggestions(items []domain.WardrobeItem, wearLogs []domain.WearLogEntry, now time.Time) []Suggestion {
	suggestions := []Suggestion{}
	season := CurrentSeason(now)

	// 1. Items not assigned to any storage space.
	var unassigned []domain.WardrobeItem
	for _, item := range items {
		if item.StorageSpaceID == "" {
			unassigned = append(unassigned, item)
		}
	}
	if len(unassigned) > 0 {
		suggestions = append(suggestions, Suggestion{
			ID:              "unassigned",
			Type:            SuggestionUnassigned,
			Title:           "Items need a home",
			Description:     fmt.Sprintf("%d %s not assigned to any storage space", len(unassigned), pluralIs(len(unassigned))),
			Icon:            "📍",
			Items:           unassigned,
			SuggestedAction: "Assign these items to a storage space",
		})
	}

	// 2. Off-season items that should be stored away. All-season items
	// never count.
	var offSeason []domain.WardrobeItem
	for _, item := range items {
		if hasSeason(item, domain.SeasonAllSeason) || hasSeason(item, season) {
			continue
		}
		offSeason = append(offSeason, item)
	}
	if len(offSeason) > 0 {
		suggestions = append(suggestions, Suggestion{
			ID:              "seasonal-rotation",
			Type:            SuggestionSeasonal,
			Title:           fmt.Sprintf("Store %d off-season items", len(offSeason)),
			Description:     "These items are for other seasons - consider moving them to storage",
			Icon:            "🔄",
			Items:           offSeason,
			SuggestedAction: "Move to storage bin or back of closet",
		})
	}

	// 3. Most worn items, wear count >= 3, descending, capped at 10.
	type counted struct {
		item  domain.WardrobeItem
		count int
	}
	var frequent []counted
	for _, item := range items {
		if c := WearCount(item.ID, wearLogs); c >= 3 {
			frequent = append(frequent, counted{item, c})
		}
	}
	sort.SliceStable(frequent, func(i, j int) bool { return frequent[i].count > frequent[j].count })
	if len(frequent) > 10 {
		frequent = frequent[:10]
	}
	if len(frequent) > 0 {
		mostWorn := make([]domain.WardrobeItem, 0, len(frequent))
		for _, c := range frequent {
			mostWorn = append(mostWorn, c.item)
		}
		suggestions = append(suggestions, Suggestion{
			ID:              "most-worn",
			Type:            SuggestionFrequency,
			Title:           "Keep your favorites accessible",
			Description:     fmt.Sprintf("Your %d most-worn items should be at eye level", len(mostWorn)),
			Icon:            "⭐",
			Items:           mostWorn,
			SuggestedAction: "Place at eye level or front of closet",
		})
	}

	// 4. Rarely worn: never worn and added over 60 days ago, or last
	// worn over 6 months ago.
	sixMonthsAgo := now.AddDate(0, -6, 0)
	var unworn []domain.WardrobeItem
	for _, item := range items {
		lastWorn, worn := LastWorn(item.ID, wearLogs)
		if !worn {
			created, err := time.Parse(time.RFC3339, item.CreatedAt)
			if err == nil && now.Sub(created) > 60*24*time.Hour {
				unworn = append(unworn, item)
			}
			continue
		}
		if lastWorn.Before(sixMonthsAgo) {
			unworn = append(unworn, item)
		}
	}
	if len(unworn) > 0 {
		suggestions = append(suggestions, Suggestion{
			ID:              "unworn",
			Type:            SuggestionUnworn,
			Title:           "Rarely worn items",
			Description:     fmt.Sprintf("%d %s been worn in a while", len(unworn), pluralHasNot(len(unworn))),
			Icon:            "🤔",
			Items:           unworn,
			SuggestedAction: "Consider donating, selling, or styling differently",
		})
	}

	// 5. Color grouping: first category (by order of first appearance)
	// with at least 5 items across at least 3 colors. Only one color
	// suggestion is ever shown.
	var order []domain.Category
	byCategory := map[domain.Category][]domain.WardrobeItem{}
	for _, item := range items {
		if _, seen := byCategory[item.Category]; !seen {
			order = append(order, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}
	for _, category := range order {
		group := byCategory[category]
		if len(group) < 5 {
			continue
		}
		colors := map[string]bool{}
		for _, item := range group {
			colors[item.Color] = true
		}
		if len(colors) < 3 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:              fmt.Sprintf("color-%s", category),
			Type:            SuggestionColor,
			Title:           fmt.Sprintf("Organize %s by color", category),
			Description:     fmt.Sprintf("Group your %d %s from dark to light for easier outfit building", len(group), category),
			Icon:            "🎨",
			Items:           group,
			SuggestedAction: "Arrange: black → navy → gray → colors → white",
		})
		break
	}

	return suggestions
}

func hasSeason(item domain.WardrobeItem, season domain.Season) bool {
	for _, s := range item.Seasons {
		if s == season {
			return true
		}
	}
	return false
}

func pluralIs(n int) string {
	if n == 1 {
		return "item is"
	}
	return "items are"
}

func pluralHasNot(n int) string {
	if n == 1 {
		return "item hasn't"
	}
	return "items haven't"
}
