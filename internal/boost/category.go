package boost

import "strings"

// Category identifies the gameplay domain a grant applies to. Effects are
// strictly scoped per category: a Crafting grant never applies to Gathering.
type Category string

const (
	CategoryLooting   Category = "Looting"
	CategoryGathering Category = "Gathering"
	CategoryCrafting  Category = "Crafting"
	CategoryHealing   Category = "Healing"
	CategoryStealing  Category = "Stealing"
	CategoryTokens    Category = "Tokens"
	CategoryTraveling Category = "Traveling"
	CategoryOther     Category = "Other"
)

// Categories lists all known categories in declaration order.
var Categories = []Category{
	CategoryLooting,
	CategoryGathering,
	CategoryCrafting,
	CategoryHealing,
	CategoryStealing,
	CategoryTokens,
	CategoryTraveling,
	CategoryOther,
}

// categoryMeta unifies the per-category flags that were historically scattered
// across ad hoc constant sets: job-perk exemption and retire-on-use.
type categoryMeta struct {
	// exempt categories bypass the job-perk eligibility check entirely; any
	// booster may provide them regardless of profession.
	exempt bool

	// singleUse categories are retired in full by one application. All other
	// categories stay active for their full duration across unlimited uses.
	singleUse bool
}

var categoryTable = map[Category]categoryMeta{
	CategoryLooting:   {},
	CategoryGathering: {},
	CategoryCrafting:  {},
	CategoryHealing:   {},
	CategoryStealing:  {},
	CategoryTokens:    {exempt: true},
	CategoryTraveling: {},
	CategoryOther:     {exempt: true, singleUse: true},
}

// ParseCategory converts a user-supplied label to a Category.
// Matching is case-insensitive. Returns false for unknown labels.
func ParseCategory(label string) (Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == needle {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether the category is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Exempt reports whether the category bypasses the job-perk check.
func (c Category) Exempt() bool {
	return categoryTable[c].exempt
}

// SingleUse reports whether a grant in this category is retired by one use.
func (c Category) SingleUse() bool {
	return categoryTable[c].singleUse
}
