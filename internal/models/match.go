// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package models

import "time"

// UserID identifies a user. IDs are opaque to the match domain; the store
// layer uses UUIDs but nothing in the core depends on that.
type UserID string

// DayType classifies a schedule slot by day category.
type DayType string

const (
	// DayWeekday covers Monday through Friday.
	DayWeekday DayType = "weekday"
	// DayWeekend covers Saturday and Sunday.
	DayWeekend DayType = "weekend"
)

// TimeSlot classifies a schedule slot by time of day.
type TimeSlot string

const (
	// SlotMorning is roughly 06:00-12:00.
	SlotMorning TimeSlot = "morning"
	// SlotAfternoon is roughly 12:00-18:00.
	SlotAfternoon TimeSlot = "afternoon"
	// SlotEvening is roughly 18:00-24:00.
	SlotEvening TimeSlot = "evening"
	// SlotLateNight is roughly 00:00-06:00.
	SlotLateNight TimeSlot = "late_night"
)

// ScheduleSlot is one (day-type, time-slot) availability window.
type ScheduleSlot struct {
	Day  DayType  `json:"day"`
	Slot TimeSlot `json:"slot"`
}

// Profile is the identity repository's record for a user. Archetype is empty
// until the surrounding system has resolved one; Online is the pre-resolved
// presence boolean supplied by the surrounding system (the match core never
// tracks presence itself).
type Profile struct {
	ID          UserID    `json:"id"`
	DisplayName string    `json:"display_name"`
	Archetype   Archetype `json:"archetype,omitempty"`
	Online      bool      `json:"online"`
}

// TraitsContext carries a user's resolved play-style facts.
type TraitsContext struct {
	Vector    TraitVector `json:"vector"`
	Archetype Archetype   `json:"archetype,omitempty"`
}

// ActivityContext carries a user's schedule facts plus the resolved online
// flag. It is present only when the user has at least one schedule slot; an
// empty slot list means the sub-context is omitted entirely, never populated
// with defaults.
type ActivityContext struct {
	Slots  []ScheduleSlot `json:"slots"`
	Online bool           `json:"online"`
}

// LibraryContext carries a user's game-library facts as synchronized by the
// external library pipeline. Present only when at least one owned title is
// known.
type LibraryContext struct {
	TitleIDs       []string `json:"title_ids"`
	TotalPlayHours float64  `json:"total_play_hours"`
}

// ReliabilityContext carries a user's party-history facts.
type ReliabilityContext struct {
	PartyCount int     `json:"party_count"`
	Score      float64 `json:"score"`
}

// UserMatchInput is one user's facts for a single matching computation.
// Each sub-context is independently optional: a nil pointer means the data
// category is unknown (cold start), which is distinct from any zero value.
type UserMatchInput struct {
	ID          UserID              `json:"id"`
	Traits      *TraitsContext      `json:"traits,omitempty"`
	Activity    *ActivityContext    `json:"activity,omitempty"`
	Library     *LibraryContext     `json:"library,omitempty"`
	Reliability *ReliabilityContext `json:"reliability,omitempty"`
}

// MatchContext is the immutable input to score composition and reason
// generation: exactly two users' assembled facts. Built once per computation
// and never mutated afterward.
type MatchContext struct {
	Viewer UserMatchInput `json:"viewer"`
	Target UserMatchInput `json:"target"`
}

// MatchResult is the fully-populated outcome of one pairwise computation.
// It is never partial: absence of underlying data degrades values but every
// field is always set, with at least three reasons and three tags.
type MatchResult struct {
	Score           int       `json:"score"`
	IsOnlineMatched bool      `json:"is_online_matched"`
	Reasons         []Reason  `json:"reasons"`
	Tags            []Tag     `json:"tags"`
	ComputedAt      time.Time `json:"computed_at"`
}

// MatchSummary is one entry of a batch evaluation: the candidate's id plus
// the full result computed against the viewer.
type MatchSummary struct {
	TargetID UserID `json:"target_id"`
	MatchResult
}

// Tag is a short match label (semantically at most six characters), with no
// structure beyond the label itself.
type Tag struct {
	Label string `json:"label"`
}
