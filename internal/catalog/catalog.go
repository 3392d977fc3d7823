// Package catalog provides the static effect catalog: a deterministic table
// mapping (booster job, category) to an effect descriptor.
//
// Resolution is a pure lookup. Exempt categories are served through a
// wildcard job entry ("*") so any booster can provide them; a named job entry
// always wins over the wildcard. The engine snapshots the resolved effect
// into the grant record at accept time, so mutating a catalog never alters
// in-flight grants.
package catalog

import (
	"fmt"

	"github.com/riftgate/boost/internal/boost"
)

// WildcardJob matches any booster job. Used for exempt categories whose
// effects are not tied to a profession perk.
const WildcardJob = "*"

type key struct {
	job      string
	category boost.Category
}

// Catalog maps (job, category) pairs to effect descriptors.
type Catalog struct {
	effects map[key]boost.Effect
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{effects: make(map[key]boost.Effect)}
}

// Default returns the built-in effect table.
func Default() *Catalog {
	c := New()
	for _, e := range []struct {
		job      string
		category boost.Category
		effect   boost.Effect
	}{
		{"hunter", boost.CategoryLooting, boost.Effect{
			Name:        "keen-eye",
			Description: "extra loot rolls while hunting",
		}},
		{"forester", boost.CategoryGathering, boost.Effect{
			Name:        "deep-roots",
			Description: "doubled yield when gathering wood and herbs",
		}},
		{"smith", boost.CategoryCrafting, boost.Effect{
			Name:        "sure-hands",
			Description: "crafting material costs partially refunded",
		}},
		{"herbalist", boost.CategoryHealing, boost.Effect{
			Name:        "mended-salve",
			Description: "healing restores additional health",
		}},
		{"guardian", boost.CategoryHealing, boost.Effect{
			Name:        "aegis",
			Description: "damage taken by nearby villagers is reduced",
			Passive:     true,
		}},
		{"rogue", boost.CategoryStealing, boost.Effect{
			Name:        "shadowstep",
			Description: "improved odds of a clean steal",
		}},
		{WildcardJob, boost.CategoryTokens, boost.Effect{
			Name:        "dividend",
			Description: "bonus tokens on token-earning activities",
		}},
		{"courier", boost.CategoryTraveling, boost.Effect{
			Name:           "waypost",
			Description:    "deliveries may target another village",
			RequiresTarget: true,
		}},
		{WildcardJob, boost.CategoryOther, boost.Effect{
			Name:        "windfall",
			Description: "a one-time stroke of luck on the next activity",
		}},
	} {
		c.Set(e.job, e.category, e.effect)
	}
	return c
}

// Set registers or replaces the effect for a (job, category) pair.
func (c *Catalog) Set(job string, category boost.Category, effect boost.Effect) {
	c.effects[key{job: job, category: category}] = effect
}

// Resolve looks up the effect a booster with the given effective job provides
// for a category. Named job entries win over the wildcard entry.
func (c *Catalog) Resolve(job string, category boost.Category) (boost.Effect, bool) {
	if e, ok := c.ResolveExact(job, category); ok {
		return e, true
	}
	return c.ResolveExact(WildcardJob, category)
}

// ResolveExact looks up an entry without falling through to the wildcard.
// The engine's eligibility validator uses this so that only exempt
// categories reach the wildcard entry.
func (c *Catalog) ResolveExact(job string, category boost.Category) (boost.Effect, bool) {
	e, ok := c.effects[key{job: job, category: category}]
	return e, ok
}

// Jobs returns the jobs that can provide a category, wildcard excluded.
// Used by the front end to explain ineligibility.
func (c *Catalog) Jobs(category boost.Category) []string {
	var jobs []string
	for k := range c.effects {
		if k.category == category && k.job != WildcardJob {
			jobs = append(jobs, k.job)
		}
	}
	return jobs
}

// Len returns the number of registered (job, category) entries.
func (c *Catalog) Len() int {
	return len(c.effects)
}

// validateEntry rejects entries that could never resolve.
func validateEntry(job string, category boost.Category) error {
	if job == "" {
		return fmt.Errorf("empty job")
	}
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}
