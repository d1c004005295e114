// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"github.com/tomtom215/squadmatch/internal/models"
)

// The 16 archetype slugs. Catalog order below is the canonical enumeration
// order; classification tie-breaks resolve to the earliest entry.
const (
	ArchetypeVanguard    models.Archetype = "vanguard"
	ArchetypeGuardian    models.Archetype = "guardian"
	ArchetypeCommander   models.Archetype = "commander"
	ArchetypeStrategist  models.Archetype = "strategist"
	ArchetypeTactician   models.Archetype = "tactician"
	ArchetypeArchitect   models.Archetype = "architect"
	ArchetypePathfinder  models.Archetype = "pathfinder"
	ArchetypeTrailblazer models.Archetype = "trailblazer"
	ArchetypeWanderer    models.Archetype = "wanderer"
	ArchetypeScout       models.Archetype = "scout"
	ArchetypeSocialite   models.Archetype = "socialite"
	ArchetypeDiplomat    models.Archetype = "diplomat"
	ArchetypeHarmonizer  models.Archetype = "harmonizer"
	ArchetypeAnchor      models.Archetype = "anchor"
	ArchetypeMaverick    models.Archetype = "maverick"
	ArchetypeFreelancer  models.Archetype = "freelancer"
)

// ArchetypeEntry binds one archetype to its canonical trait vector
// ("ideal point") and display name.
type ArchetypeEntry struct {
	Slug  models.Archetype   `json:"slug"`
	Name  string             `json:"name"`
	Ideal models.TraitVector `json:"ideal"`
}

// archetypeCatalog is the fixed catalog, loaded once. The slice order is the
// canonical enumeration order used for deterministic tie-breaking.
var archetypeCatalog = []ArchetypeEntry{
	{ArchetypeVanguard, "Vanguard", models.TraitVector{Cooperation: 70, Exploration: 50, Strategy: 60, Leadership: 85, Social: 60}},
	{ArchetypeGuardian, "Guardian", models.TraitVector{Cooperation: 90, Exploration: 40, Strategy: 55, Leadership: 45, Social: 60}},
	{ArchetypeCommander, "Commander", models.TraitVector{Cooperation: 55, Exploration: 40, Strategy: 75, Leadership: 90, Social: 50}},
	{ArchetypeStrategist, "Strategist", models.TraitVector{Cooperation: 55, Exploration: 45, Strategy: 90, Leadership: 65, Social: 40}},
	{ArchetypeTactician, "Tactician", models.TraitVector{Cooperation: 40, Exploration: 55, Strategy: 80, Leadership: 40, Social: 55}},
	{ArchetypeArchitect, "Architect", models.TraitVector{Cooperation: 40, Exploration: 60, Strategy: 90, Leadership: 55, Social: 30}},
	{ArchetypePathfinder, "Pathfinder", models.TraitVector{Cooperation: 45, Exploration: 90, Strategy: 55, Leadership: 45, Social: 40}},
	{ArchetypeTrailblazer, "Trailblazer", models.TraitVector{Cooperation: 50, Exploration: 80, Strategy: 65, Leadership: 70, Social: 45}},
	{ArchetypeWanderer, "Wanderer", models.TraitVector{Cooperation: 35, Exploration: 85, Strategy: 40, Leadership: 30, Social: 55}},
	{ArchetypeScout, "Scout", models.TraitVector{Cooperation: 45, Exploration: 70, Strategy: 50, Leadership: 35, Social: 65}},
	{ArchetypeSocialite, "Socialite", models.TraitVector{Cooperation: 65, Exploration: 45, Strategy: 40, Leadership: 50, Social: 90}},
	{ArchetypeDiplomat, "Diplomat", models.TraitVector{Cooperation: 75, Exploration: 45, Strategy: 55, Leadership: 60, Social: 80}},
	{ArchetypeHarmonizer, "Harmonizer", models.TraitVector{Cooperation: 80, Exploration: 55, Strategy: 35, Leadership: 40, Social: 75}},
	{ArchetypeAnchor, "Anchor", models.TraitVector{Cooperation: 85, Exploration: 35, Strategy: 60, Leadership: 55, Social: 40}},
	{ArchetypeMaverick, "Maverick", models.TraitVector{Cooperation: 25, Exploration: 75, Strategy: 60, Leadership: 60, Social: 35}},
	{ArchetypeFreelancer, "Freelancer", models.TraitVector{Cooperation: 30, Exploration: 60, Strategy: 45, Leadership: 35, Social: 30}},
}

// Catalog returns the fixed archetype catalog in canonical order. The
// returned slice is shared; callers must not modify it.
func Catalog() []ArchetypeEntry {
	return archetypeCatalog
}

// CatalogEntry returns the entry for the given archetype, or false when the
// slug is unknown.
func CatalogEntry(a models.Archetype) (ArchetypeEntry, bool) {
	for _, e := range archetypeCatalog {
		if e.Slug == a {
			return e, true
		}
	}
	return ArchetypeEntry{}, false
}

// CompatTier is one tier of the fixed archetype compatibility table.
type CompatTier int

const (
	// TierNeutral applies no adjustment.
	TierNeutral CompatTier = iota
	// TierChallenging slightly dampens the pair.
	TierChallenging
	// TierGood mildly boosts the pair.
	TierGood
	// TierBest strongly boosts the pair.
	TierBest
)

// Multiplier returns the score multiplier for the tier.
func (t CompatTier) Multiplier() float64 {
	switch t {
	case TierBest:
		return 1.10
	case TierGood:
		return 1.07
	case TierChallenging:
		return 0.95
	default:
		return 1.0
	}
}

type archetypePair struct {
	a, b models.Archetype
}

// compatTable holds the non-neutral entries of the symmetric compatibility
// table. Pairs are stored in one direction; lookup checks both.
var compatTable = map[archetypePair]CompatTier{
	{ArchetypeVanguard, ArchetypeGuardian}:      TierBest,
	{ArchetypeStrategist, ArchetypeArchitect}:   TierBest,
	{ArchetypePathfinder, ArchetypeScout}:       TierBest,
	{ArchetypeSocialite, ArchetypeHarmonizer}:   TierBest,
	{ArchetypeCommander, ArchetypeAnchor}:       TierBest,
	{ArchetypeTrailblazer, ArchetypeWanderer}:   TierBest,
	{ArchetypeDiplomat, ArchetypeSocialite}:     TierBest,
	{ArchetypeTactician, ArchetypeCommander}:    TierBest,
	{ArchetypeVanguard, ArchetypeCommander}:     TierGood,
	{ArchetypeStrategist, ArchetypeTactician}:   TierGood,
	{ArchetypePathfinder, ArchetypeTrailblazer}: TierGood,
	{ArchetypeGuardian, ArchetypeAnchor}:        TierGood,
	{ArchetypeHarmonizer, ArchetypeDiplomat}:    TierGood,
	{ArchetypeScout, ArchetypeWanderer}:         TierGood,
	{ArchetypeMaverick, ArchetypeTrailblazer}:   TierGood,
	{ArchetypeFreelancer, ArchetypeWanderer}:    TierGood,
	{ArchetypeArchitect, ArchetypeTactician}:    TierGood,
	{ArchetypeMaverick, ArchetypeGuardian}:      TierChallenging,
	{ArchetypeFreelancer, ArchetypeSocialite}:   TierChallenging,
	{ArchetypeCommander, ArchetypeMaverick}:     TierChallenging,
	{ArchetypeAnchor, ArchetypeWanderer}:        TierChallenging,
	{ArchetypeVanguard, ArchetypeFreelancer}:    TierChallenging,
}

// Compatibility returns the tier for a pair of archetypes. Identical
// archetypes are TierBest; unknown or unlisted pairs are TierNeutral.
func Compatibility(a, b models.Archetype) CompatTier {
	if !a.Resolved() || !b.Resolved() {
		return TierNeutral
	}
	if a == b {
		return TierBest
	}
	if t, ok := compatTable[archetypePair{a, b}]; ok {
		return t
	}
	if t, ok := compatTable[archetypePair{b, a}]; ok {
		return t
	}
	return TierNeutral
}
