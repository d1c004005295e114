// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"github.com/tomtom215/squadmatch/internal/models"
)

// Per-dimension delta magnitudes for answer options.
const (
	primaryDelta   = 20.0
	secondaryDelta = 10.0
)

// DefaultQuestionSet returns the built-in onboarding questionnaire. Each
// option moves one primary dimension by ±20 and up to two secondary
// dimensions by ±10.
func DefaultQuestionSet() QuestionSet {
	return QuestionSet{Questions: []Question{
		{
			ID:   "q_session_start",
			Text: "A new co-op session starts. What do you do first?",
			Options: []AnswerOption{
				{ID: "lead", Text: "Take charge and assign roles", Effects: []TraitEffect{
					{models.DimLeadership, primaryDelta}, {models.DimStrategy, secondaryDelta}, {models.DimSocial, secondaryDelta},
				}},
				{ID: "scout", Text: "Wander off to see the map", Effects: []TraitEffect{
					{models.DimExploration, primaryDelta}, {models.DimLeadership, -secondaryDelta},
				}},
				{ID: "support", Text: "Ask the group what they need", Effects: []TraitEffect{
					{models.DimCooperation, primaryDelta}, {models.DimSocial, secondaryDelta},
				}},
			},
		},
		{
			ID:   "q_plan",
			Text: "How much do you plan before acting?",
			Options: []AnswerOption{
				{ID: "deep", Text: "Spreadsheet-level planning", Effects: []TraitEffect{
					{models.DimStrategy, primaryDelta}, {models.DimExploration, -secondaryDelta},
				}},
				{ID: "light", Text: "A rough idea is enough", Effects: []TraitEffect{
					{models.DimStrategy, secondaryDelta},
				}},
				{ID: "none", Text: "Plans are for other people", Effects: []TraitEffect{
					{models.DimStrategy, -primaryDelta}, {models.DimExploration, secondaryDelta},
				}},
			},
		},
		{
			ID:   "q_conflict",
			Text: "Two squadmates argue over the next objective. You...",
			Options: []AnswerOption{
				{ID: "mediate", Text: "Talk both of them down", Effects: []TraitEffect{
					{models.DimSocial, primaryDelta}, {models.DimCooperation, secondaryDelta},
				}},
				{ID: "decide", Text: "Pick one and move everyone on", Effects: []TraitEffect{
					{models.DimLeadership, primaryDelta}, {models.DimSocial, -secondaryDelta},
				}},
				{ID: "leave", Text: "Go do your own thing meanwhile", Effects: []TraitEffect{
					{models.DimCooperation, -primaryDelta}, {models.DimExploration, secondaryDelta},
				}},
			},
		},
		{
			ID:   "q_new_game",
			Text: "A new game drops. What pulls you in?",
			Options: []AnswerOption{
				{ID: "world", Text: "An unexplored world", Effects: []TraitEffect{
					{models.DimExploration, primaryDelta}, {models.DimSocial, -secondaryDelta},
				}},
				{ID: "meta", Text: "A deep build system to optimize", Effects: []TraitEffect{
					{models.DimStrategy, primaryDelta}, {models.DimCooperation, -secondaryDelta},
				}},
				{ID: "friends", Text: "Whatever the squad is playing", Effects: []TraitEffect{
					{models.DimSocial, primaryDelta}, {models.DimCooperation, secondaryDelta},
				}},
			},
		},
		{
			ID:   "q_loss",
			Text: "Your team is losing badly. You...",
			Options: []AnswerOption{
				{ID: "rally", Text: "Call a regroup and a new plan", Effects: []TraitEffect{
					{models.DimLeadership, primaryDelta}, {models.DimStrategy, secondaryDelta},
				}},
				{ID: "grind", Text: "Keep your head down and play your role", Effects: []TraitEffect{
					{models.DimCooperation, primaryDelta}, {models.DimLeadership, -secondaryDelta},
				}},
				{ID: "joke", Text: "Keep morale up in voice chat", Effects: []TraitEffect{
					{models.DimSocial, primaryDelta}, {models.DimStrategy, -secondaryDelta},
				}},
			},
		},
		{
			ID:   "q_solo",
			Text: "How often do you queue alone?",
			Options: []AnswerOption{
				{ID: "always", Text: "Almost always", Effects: []TraitEffect{
					{models.DimCooperation, -primaryDelta}, {models.DimSocial, -secondaryDelta},
				}},
				{ID: "sometimes", Text: "When the squad is offline", Effects: []TraitEffect{
					{models.DimExploration, secondaryDelta},
				}},
				{ID: "never", Text: "Only with a full party", Effects: []TraitEffect{
					{models.DimCooperation, primaryDelta}, {models.DimSocial, secondaryDelta},
				}},
			},
		},
	}}
}
