// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"math"

	"github.com/tomtom215/squadmatch/internal/models"
)

// Score pipeline constants.
const (
	// baselineScore is the midpoint used when either side lacks a
	// trait vector.
	baselineScore = 50.0

	// scheduleBonusThreshold is the schedule similarity below which no
	// schedule bonus applies.
	scheduleBonusThreshold = 60.0

	// scheduleBonusMax caps the schedule factor at a 5% boost.
	scheduleBonusMax = 0.05

	// offlinePenalty is the availability factor applied when the
	// target is known to be offline.
	offlinePenalty = 0.85

	// sharedTitleBonus is the additive bonus per library title both
	// sides own.
	sharedTitleBonus = 2.0
)

// ScoreComposer turns an assembled MatchContext into a bounded integer
// compatibility score. The pipeline is a fixed sequence of factors; each
// factor only reads the context and degrades to a no-op when its facts
// are absent, so every input combination yields a valid score.
type ScoreComposer struct{}

// NewScoreComposer returns a stateless composer.
func NewScoreComposer() *ScoreComposer {
	return &ScoreComposer{}
}

// Compose runs the pipeline: base similarity, archetype multiplier,
// schedule factor, availability factor, shared-library bonus, then a
// round and clamp into [0,100].
func (c *ScoreComposer) Compose(mc *models.MatchContext) (score int, isOnlineMatched bool) {
	s := c.baseSimilarity(mc)

	s *= c.archetypeMultiplier(mc)
	if s > models.TraitMax {
		s = models.TraitMax
	}

	s *= c.scheduleFactor(mc)
	s *= c.availabilityFactor(mc)
	s += c.libraryBonus(mc)

	final := int(math.Round(s))
	if final < 0 {
		final = 0
	} else if final > 100 {
		final = 100
	}

	return final, targetOnline(mc)
}

func (c *ScoreComposer) baseSimilarity(mc *models.MatchContext) float64 {
	if mc.Viewer.Traits == nil || mc.Target.Traits == nil {
		return baselineScore
	}
	return SimilarityScore(mc.Viewer.Traits.Vector, mc.Target.Traits.Vector)
}

func (c *ScoreComposer) archetypeMultiplier(mc *models.MatchContext) float64 {
	if mc.Viewer.Traits == nil || mc.Target.Traits == nil {
		return 1.0
	}
	tier := Compatibility(mc.Viewer.Traits.Archetype, mc.Target.Traits.Archetype)
	return tier.Multiplier()
}

func (c *ScoreComposer) scheduleFactor(mc *models.MatchContext) float64 {
	if mc.Viewer.Activity == nil || mc.Target.Activity == nil {
		return 1.0
	}
	sim := ScheduleSimilarity(mc.Viewer.Activity.Slots, mc.Target.Activity.Slots)
	if sim < scheduleBonusThreshold {
		return 1.0
	}
	span := models.TraitMax - scheduleBonusThreshold
	return 1.0 + scheduleBonusMax*(sim-scheduleBonusThreshold)/span
}

// availabilityFactor penalizes a target known to be offline. A target
// with no activity data at all has no resolved presence, so no penalty
// applies and a full cold start still scores the midpoint.
func (c *ScoreComposer) availabilityFactor(mc *models.MatchContext) float64 {
	if mc.Target.Activity == nil {
		return 1.0
	}
	if mc.Target.Activity.Online {
		return 1.0
	}
	return offlinePenalty
}

func (c *ScoreComposer) libraryBonus(mc *models.MatchContext) float64 {
	shared := SharedTitles(mc.Viewer.Library, mc.Target.Library)
	return sharedTitleBonus * float64(len(shared))
}

func targetOnline(mc *models.MatchContext) bool {
	return mc.Target.Activity != nil && mc.Target.Activity.Online
}

// ScheduleSimilarity scores two slot sets in [0,100] as the ratio of
// shared slots to distinct slots across both sides.
func ScheduleSimilarity(a, b []models.ScheduleSlot) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	seen := make(map[models.ScheduleSlot]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	shared := 0
	union := len(seen)
	counted := make(map[models.ScheduleSlot]struct{}, len(b))
	for _, s := range b {
		if _, dup := counted[s]; dup {
			continue
		}
		counted[s] = struct{}{}
		if _, ok := seen[s]; ok {
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union) * 100
}

// SharedTitles returns the title ids both libraries contain, in the
// viewer library's order. Either library being nil or empty yields nil.
func SharedTitles(viewer, target *models.LibraryContext) []string {
	if viewer == nil || target == nil || len(viewer.TitleIDs) == 0 || len(target.TitleIDs) == 0 {
		return nil
	}
	owned := make(map[string]struct{}, len(target.TitleIDs))
	for _, id := range target.TitleIDs {
		owned[id] = struct{}{}
	}
	var shared []string
	seen := make(map[string]struct{}, len(viewer.TitleIDs))
	for _, id := range viewer.TitleIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := owned[id]; ok {
			shared = append(shared, id)
		}
	}
	return shared
}
