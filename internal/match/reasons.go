// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"math"

	"github.com/tomtom215/squadmatch/internal/models"
)

// minReasons is the minimum number of reasons and tags every match
// explanation carries; baseline fallbacks pad the list when the context
// cannot supply enough data-driven entries.
const minReasons = 3

// defaultReliability is the neutral reliability reading used for
// baseline fallback reasons.
const defaultReliability = 0.75

// ReasonTagGenerator derives structured match reasons and short tags
// from a MatchContext. Reasons carry facts only; rendering them as prose
// is a presentation concern.
type ReasonTagGenerator struct{}

// NewReasonTagGenerator returns a stateless generator.
func NewReasonTagGenerator() *ReasonTagGenerator {
	return &ReasonTagGenerator{}
}

// Generate produces at least minReasons reasons and tags. Data-driven
// entries come first; baseline entries fill any remaining slots and are
// marked as such.
func (g *ReasonTagGenerator) Generate(mc *models.MatchContext) ([]models.Reason, []models.Tag) {
	var reasons []models.Reason
	var tags []models.Tag

	if mc.Viewer.Traits != nil && mc.Target.Traits != nil {
		sim := int(math.Round(SimilarityScore(mc.Viewer.Traits.Vector, mc.Target.Traits.Vector)))
		reasons = append(reasons, models.Reason{
			Kind:     models.ReasonStyleSimilarity,
			Priority: models.PriorityHigh,
			Facts: models.StyleSimilarityFacts{
				Similarity:      sim,
				ViewerArchetype: mc.Viewer.Traits.Archetype,
				TargetArchetype: mc.Target.Traits.Archetype,
			},
		})
		tags = append(tags, models.Tag{Label: "style"})
	}

	if shared := SharedTitles(mc.Viewer.Library, mc.Target.Library); len(shared) > 0 {
		reasons = append(reasons, models.Reason{
			Kind:     models.ReasonCommonLibrary,
			Priority: models.PriorityHigh,
			Facts:    models.LibraryOverlapFacts{SharedTitles: len(shared)},
		})
		tags = append(tags, models.Tag{Label: "games"})
	}

	if mc.Viewer.Library != nil && mc.Target.Library != nil {
		reasons = append(reasons, models.Reason{
			Kind:     models.ReasonPlayTime,
			Priority: models.PriorityHigh,
			Facts: models.PlayTimeFacts{
				ViewerHours: mc.Viewer.Library.TotalPlayHours,
				TargetHours: mc.Target.Library.TotalPlayHours,
			},
		})
		tags = append(tags, models.Tag{Label: "hours"})
	}

	if mc.Viewer.Activity != nil && mc.Target.Activity != nil {
		shared := sharedSlots(mc.Viewer.Activity.Slots, mc.Target.Activity.Slots)
		if len(shared) > 0 {
			sim := int(math.Round(ScheduleSimilarity(mc.Viewer.Activity.Slots, mc.Target.Activity.Slots)))
			reasons = append(reasons, models.Reason{
				Kind:     models.ReasonActivityPattern,
				Priority: models.PriorityMedium,
				Facts:    models.ActivityPatternFacts{Similarity: sim, SharedSlots: len(shared)},
			})
			tags = append(tags, models.Tag{Label: "times"})
		}
	}

	if mc.Target.Activity != nil && mc.Target.Activity.Online {
		reasons = append(reasons, models.Reason{
			Kind:     models.ReasonOnline,
			Priority: models.PriorityMedium,
			Facts:    models.OnlineFacts{Online: true},
		})
		tags = append(tags, models.Tag{Label: "online"})
	}

	if mc.Viewer.Reliability != nil && mc.Target.Reliability != nil && mc.Viewer.Reliability.PartyCount > 0 && mc.Target.Reliability.PartyCount > 0 {
		reasons = append(reasons, models.Reason{
			Kind:     models.ReasonPartyExperience,
			Priority: models.PriorityMedium,
			Facts: models.PartyExperienceFacts{
				ViewerParties: mc.Viewer.Reliability.PartyCount,
				TargetParties: mc.Target.Reliability.PartyCount,
			},
		})
		tags = append(tags, models.Tag{Label: "squads"})
	}

	if mc.Target.Reliability != nil {
		reasons = append(reasons, models.Reason{
			Kind:     models.ReasonReliability,
			Priority: models.PriorityMedium,
			Facts:    models.ReliabilityFacts{Score: mc.Target.Reliability.Score},
		})
		tags = append(tags, models.Tag{Label: "solid"})
	}

	reasons, tags = g.fillBaseline(mc, reasons, tags)
	return reasons, tags
}

// fillBaseline pads the lists to minReasons with synthetic entries built
// from neutral readings, skipping kinds already present.
func (g *ReasonTagGenerator) fillBaseline(mc *models.MatchContext, reasons []models.Reason, tags []models.Tag) ([]models.Reason, []models.Tag) {
	present := make(map[models.ReasonKind]struct{}, len(reasons))
	for _, r := range reasons {
		present[r.Kind] = struct{}{}
	}

	type fallback struct {
		reason models.Reason
		tag    models.Tag
	}
	candidates := []fallback{
		{
			reason: models.Reason{
				Kind:     models.ReasonReliability,
				Priority: models.PriorityLow,
				Facts:    models.ReliabilityFacts{Score: defaultReliability},
			},
			tag: models.Tag{Label: "solid"},
		},
		{
			reason: models.Reason{
				Kind:     models.ReasonStyleSimilarity,
				Priority: models.PriorityLow,
				Facts:    models.StyleSimilarityFacts{Similarity: int(baselineScore)},
			},
			tag: models.Tag{Label: "style"},
		},
		{
			reason: models.Reason{
				Kind:     models.ReasonOnline,
				Priority: models.PriorityLow,
				Facts:    models.OnlineFacts{Online: targetOnline(mc)},
			},
			tag: models.Tag{Label: "status"},
		},
		{
			reason: models.Reason{
				Kind:     models.ReasonPartyExperience,
				Priority: models.PriorityLow,
				Facts:    models.PartyExperienceFacts{},
			},
			tag: models.Tag{Label: "squads"},
		},
	}

	for _, fb := range candidates {
		if len(reasons) >= minReasons {
			break
		}
		if _, dup := present[fb.reason.Kind]; dup {
			continue
		}
		fb.reason.IsBaseline = true
		reasons = append(reasons, fb.reason)
		tags = append(tags, fb.tag)
		present[fb.reason.Kind] = struct{}{}
	}
	return reasons, tags
}

func sharedSlots(a, b []models.ScheduleSlot) []models.ScheduleSlot {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	have := make(map[models.ScheduleSlot]struct{}, len(b))
	for _, s := range b {
		have[s] = struct{}{}
	}
	var shared []models.ScheduleSlot
	seen := make(map[models.ScheduleSlot]struct{}, len(a))
	for _, s := range a {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := have[s]; ok {
			shared = append(shared, s)
		}
	}
	return shared
}
