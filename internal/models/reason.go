// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package models

// ReasonKind discriminates the seven reason variants. Each kind carries a
// different fact payload (see the *Facts types); reasons hold numeric and
// boolean facts only; prose generation belongs to the presentation layer.
type ReasonKind string

const (
	// ReasonCommonLibrary reports overlap between the two users' game libraries.
	ReasonCommonLibrary ReasonKind = "common_library_overlap"
	// ReasonPlayTime reports comparable total play time.
	ReasonPlayTime ReasonKind = "play_time_match"
	// ReasonStyleSimilarity reports trait-vector closeness.
	ReasonStyleSimilarity ReasonKind = "style_similarity"
	// ReasonPartyExperience reports shared party history volume.
	ReasonPartyExperience ReasonKind = "shared_party_experience"
	// ReasonReliability reports the target's reliability reading.
	ReasonReliability ReasonKind = "reliability"
	// ReasonOnline reports that the target is currently online.
	ReasonOnline ReasonKind = "currently_online"
	// ReasonActivityPattern reports schedule-slot alignment.
	ReasonActivityPattern ReasonKind = "activity_pattern_match"
)

// ReasonPriority ranks reasons for display ordering. Priorities are fixed
// per kind and independent of the computed score.
type ReasonPriority string

const (
	// PriorityHigh marks the strongest signals (style, common library).
	PriorityHigh ReasonPriority = "high"
	// PriorityMedium marks supporting signals (schedule, reliability, online).
	PriorityMedium ReasonPriority = "medium"
	// PriorityLow marks baseline fallback entries.
	PriorityLow ReasonPriority = "low"
)

// ReasonFacts is the per-kind fact payload of a Reason. Concrete types are
// the *Facts structs below; the marker method keeps the set closed so kind
// handling stays exhaustive.
type ReasonFacts interface {
	reasonFacts()
}

// LibraryOverlapFacts backs ReasonCommonLibrary.
type LibraryOverlapFacts struct {
	SharedTitles int `json:"shared_titles"`
}

// PlayTimeFacts backs ReasonPlayTime.
type PlayTimeFacts struct {
	ViewerHours float64 `json:"viewer_hours"`
	TargetHours float64 `json:"target_hours"`
}

// StyleSimilarityFacts backs ReasonStyleSimilarity.
type StyleSimilarityFacts struct {
	Similarity      int       `json:"similarity"`
	ViewerArchetype Archetype `json:"viewer_archetype,omitempty"`
	TargetArchetype Archetype `json:"target_archetype,omitempty"`
}

// PartyExperienceFacts backs ReasonPartyExperience.
type PartyExperienceFacts struct {
	ViewerParties int `json:"viewer_parties"`
	TargetParties int `json:"target_parties"`
}

// ReliabilityFacts backs ReasonReliability.
type ReliabilityFacts struct {
	Score float64 `json:"score"`
}

// OnlineFacts backs ReasonOnline.
type OnlineFacts struct {
	Online bool `json:"online"`
}

// ActivityPatternFacts backs ReasonActivityPattern.
type ActivityPatternFacts struct {
	Similarity  int `json:"similarity"`
	SharedSlots int `json:"shared_slots"`
}

func (LibraryOverlapFacts) reasonFacts()  {}
func (PlayTimeFacts) reasonFacts()        {}
func (StyleSimilarityFacts) reasonFacts() {}
func (PartyExperienceFacts) reasonFacts() {}
func (ReliabilityFacts) reasonFacts()     {}
func (OnlineFacts) reasonFacts()          {}
func (ActivityPatternFacts) reasonFacts() {}

// Reason is one structured explanation entry of a match result. IsBaseline
// marks synthetic fallback entries emitted to satisfy the minimum-three
// guarantee when real signal is insufficient.
type Reason struct {
	Kind       ReasonKind     `json:"kind"`
	Priority   ReasonPriority `json:"priority"`
	IsBaseline bool           `json:"is_baseline"`
	Facts      ReasonFacts    `json:"facts"`
}
