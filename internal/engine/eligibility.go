package engine

import (
	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/catalog"
)

// Eligibility checks are pure functions over already-fetched actors and the
// catalog; the lifecycle operations fetch the records and call them.

// resolveEffect resolves the effect a booster with the given effective job
// would provide for a category.
//
// Non-exempt categories require a named (job, category) entry - that is the
// job-perk check. Exempt categories bypass it and fall through to the
// catalog's wildcard entry, so any booster can provide them.
func resolveEffect(cat *catalog.Catalog, job string, category boost.Category) (boost.Effect, bool) {
	if e, ok := cat.ResolveExact(job, category); ok {
		return e, true
	}
	if category.Exempt() {
		return cat.ResolveExact(catalog.WildcardJob, category)
	}
	return boost.Effect{}, false
}

// checkGrantable validates that the resolved effect can be manually granted
// and that the request context matches the effect's parameter requirements.
func checkGrantable(effect boost.Effect, category boost.Category, reqContext map[string]string) *boost.Error {
	if effect.Passive {
		return boost.NewPassiveEffectError(effect, category)
	}

	target := reqContext[boost.TargetVillageKey]
	if effect.RequiresTarget && target == "" {
		return &boost.Error{
			Code:     boost.ErrCodeIneligible,
			Message:  "this boost needs a target village",
			Category: category,
			Details:  map[string]string{"missing": boost.TargetVillageKey},
		}
	}
	if !effect.RequiresTarget && target != "" {
		return &boost.Error{
			Code:     boost.ErrCodeIneligible,
			Message:  "this boost does not take a target village",
			Category: category,
			Details:  map[string]string{"unexpected": boost.TargetVillageKey},
		}
	}
	return nil
}

// checkColocation requires booster and beneficiary to share a location
// unless the caller set the remote override.
func checkColocation(beneficiary, booster *boost.Actor, allowRemote bool) *boost.Error {
	if allowRemote || beneficiary.Location == booster.Location {
		return nil
	}
	return &boost.Error{
		Code:        boost.ErrCodeIneligible,
		Message:     "booster and beneficiary are in different places",
		Beneficiary: beneficiary.Name,
		Booster:     booster.Name,
		Details: map[string]string{
			"beneficiary_location": beneficiary.Location,
			"booster_location":     booster.Location,
		},
	}
}
