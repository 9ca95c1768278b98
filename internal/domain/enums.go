package domain

type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryBags        Category = "bags"
)

var categories = map[Category]bool{
	CategoryTops:        true,
	CategoryBottoms:     true,
	CategoryDresses:     true,
	CategoryOuterwear:   true,
	CategoryShoes:       true,
	CategoryAccessories: true,
	CategoryBags:        true,
}

func (c Category) Valid() bool { return categories[c] }

type Season string

const (
	SeasonSpring    Season = "spring"
	SeasonSummer    Season = "summer"
	SeasonFall      Season = "fall"
	SeasonWinter    Season = "winter"
	SeasonAllSeason Season = "all-season"
)

var seasons = map[Season]bool{
	SeasonSpring:    true,
	SeasonSummer:    true,
	SeasonFall:      true,
	SeasonWinter:    true,
	SeasonAllSeason: true,
}

func (s Season) Valid() bool { return seasons[s] }

type Fit string

const (
	FitTight     Fit = "tight"
	FitFitted    Fit = "fitted"
	FitRegular   Fit = "regular"
	FitLoose     Fit = "loose"
	FitOversized Fit = "oversized"
)

var fits = map[Fit]bool{
	FitTight:     true,
	FitFitted:    true,
	FitRegular:   true,
	FitLoose:     true,
	FitOversized: true,
}

// Valid accepts the empty string: fit is an optional item attribute.
func (f Fit) Valid() bool { return f == "" || fits[f] }

type StorageSpaceType string

const (
	SpaceHanging StorageSpaceType = "hanging"
	SpaceShelf   StorageSpaceType = "shelf"
	SpaceDrawer  StorageSpaceType = "drawer"
	SpaceBin     StorageSpaceType = "bin"
	SpaceRack    StorageSpaceType = "rack"
	SpaceOther   StorageSpaceType = "other"
)

var spaceTypes = map[StorageSpaceType]bool{
	SpaceHanging: true,
	SpaceShelf:   true,
	SpaceDrawer:  true,
	SpaceBin:     true,
	SpaceRack:    true,
	SpaceOther:   true,
}

func (t StorageSpaceType) Valid() bool { return spaceTypes[t] }

type Occasion string

const (
	OccasionCasual Occasion = "casual"
	OccasionWork   Occasion = "work"
	OccasionFormal Occasion = "formal"
	OccasionParty  Occasion = "party"
	OccasionDate   Occasion = "date"
	OccasionTravel Occasion = "travel"
	OccasionOther  Occasion = "other"
)

var occasions = map[Occasion]bool{
	OccasionCasual: true,
	OccasionWork:   true,
	OccasionFormal: true,
	OccasionParty:  true,
	OccasionDate:   true,
	OccasionTravel: true,
	OccasionOther:  true,
}

func (o Occasion) Valid() bool { return occasions[o] }

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)
