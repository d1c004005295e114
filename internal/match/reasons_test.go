// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"testing"

	"github.com/tomtom215/squadmatch/internal/models"
)

func reasonByKind(reasons []models.Reason, kind models.ReasonKind) (models.Reason, bool) {
	for _, r := range reasons {
		if r.Kind == kind {
			return r, true
		}
	}
	return models.Reason{}, false
}

func TestGenerateColdStartBaseline(t *testing.T) {
	g := NewReasonTagGenerator()
	mc := &models.MatchContext{
		Viewer: models.UserMatchInput{ID: "viewer"},
		Target: models.UserMatchInput{ID: "target"},
	}

	reasons, tags := g.Generate(mc)
	if len(reasons) < 3 {
		t.Fatalf("cold start produced %d reasons, want >= 3", len(reasons))
	}
	if len(tags) != len(reasons) {
		t.Errorf("tag count %d != reason count %d", len(tags), len(reasons))
	}
	for _, r := range reasons {
		if !r.IsBaseline {
			t.Errorf("cold-start reason %s not marked baseline", r.Kind)
		}
		if r.Priority != models.PriorityLow {
			t.Errorf("baseline reason %s has priority %s, want low", r.Kind, r.Priority)
		}
	}
}

func TestGenerateDataDriven(t *testing.T) {
	g := NewReasonTagGenerator()
	mc := &models.MatchContext{
		Viewer: models.UserMatchInput{
			ID:          "viewer",
			Traits:      &models.TraitsContext{Vector: models.CenterVector(), Archetype: ArchetypeScout},
			Activity:    &models.ActivityContext{Slots: []models.ScheduleSlot{weekdayEvening}, Online: true},
			Library:     &models.LibraryContext{TitleIDs: []string{"t1", "t2"}, TotalPlayHours: 340},
			Reliability: &models.ReliabilityContext{PartyCount: 12, Score: 0.9},
		},
		Target: models.UserMatchInput{
			ID:          "target",
			Traits:      &models.TraitsContext{Vector: models.CenterVector(), Archetype: ArchetypePathfinder},
			Activity:    &models.ActivityContext{Slots: []models.ScheduleSlot{weekdayEvening}, Online: true},
			Library:     &models.LibraryContext{TitleIDs: []string{"t2", "t3"}, TotalPlayHours: 120},
			Reliability: &models.ReliabilityContext{PartyCount: 7, Score: 0.8},
		},
	}

	reasons, tags := g.Generate(mc)
	if len(reasons) < 3 {
		t.Fatalf("got %d reasons, want >= 3", len(reasons))
	}
	if len(tags) != len(reasons) {
		t.Errorf("tag count %d != reason count %d", len(tags), len(reasons))
	}
	for _, r := range reasons {
		if r.IsBaseline {
			t.Errorf("fully populated context produced baseline reason %s", r.Kind)
		}
	}

	style, ok := reasonByKind(reasons, models.ReasonStyleSimilarity)
	if !ok {
		t.Fatal("style similarity reason missing")
	}
	if style.Priority != models.PriorityHigh {
		t.Errorf("style priority = %s, want high", style.Priority)
	}
	facts, ok := style.Facts.(models.StyleSimilarityFacts)
	if !ok {
		t.Fatalf("style facts have type %T", style.Facts)
	}
	if facts.Similarity != 100 {
		t.Errorf("identical vectors should read similarity 100, got %d", facts.Similarity)
	}

	lib, ok := reasonByKind(reasons, models.ReasonCommonLibrary)
	if !ok {
		t.Fatal("common library reason missing")
	}
	if lib.Priority != models.PriorityHigh {
		t.Errorf("library priority = %s, want high", lib.Priority)
	}
	libFacts := lib.Facts.(models.LibraryOverlapFacts)
	if libFacts.SharedTitles != 1 {
		t.Errorf("shared titles = %d, want 1", libFacts.SharedTitles)
	}

	if online, ok := reasonByKind(reasons, models.ReasonOnline); !ok {
		t.Error("online reason missing for online target")
	} else if online.Priority != models.PriorityMedium {
		t.Errorf("online priority = %s, want medium", online.Priority)
	}

	if sched, ok := reasonByKind(reasons, models.ReasonActivityPattern); !ok {
		t.Error("activity pattern reason missing for shared slot")
	} else if sched.Priority != models.PriorityMedium {
		t.Errorf("activity pattern priority = %s, want medium", sched.Priority)
	}
}

func TestGeneratePartialContextPadsToMinimum(t *testing.T) {
	g := NewReasonTagGenerator()
	mc := &models.MatchContext{
		Viewer: models.UserMatchInput{
			ID:     "viewer",
			Traits: &models.TraitsContext{Vector: models.CenterVector()},
		},
		Target: models.UserMatchInput{
			ID:     "target",
			Traits: &models.TraitsContext{Vector: models.CenterVector()},
		},
	}

	reasons, _ := g.Generate(mc)
	if len(reasons) < 3 {
		t.Fatalf("got %d reasons, want >= 3", len(reasons))
	}

	dataDriven, baseline := 0, 0
	for _, r := range reasons {
		if r.IsBaseline {
			baseline++
		} else {
			dataDriven++
		}
	}
	if dataDriven != 1 {
		t.Errorf("expected exactly the style reason to be data-driven, got %d", dataDriven)
	}
	if baseline != 2 {
		t.Errorf("expected 2 baseline fillers, got %d", baseline)
	}

	kinds := map[models.ReasonKind]int{}
	for _, r := range reasons {
		kinds[r.Kind]++
	}
	for k, n := range kinds {
		if n > 1 {
			t.Errorf("reason kind %s appears %d times", k, n)
		}
	}
}

func TestGenerateNoOnlineReasonForOfflineTarget(t *testing.T) {
	g := NewReasonTagGenerator()
	mc := &models.MatchContext{
		Viewer: models.UserMatchInput{ID: "viewer"},
		Target: models.UserMatchInput{
			ID:       "target",
			Activity: &models.ActivityContext{Slots: []models.ScheduleSlot{weekdayEvening}, Online: false},
		},
	}

	reasons, _ := g.Generate(mc)
	if r, ok := reasonByKind(reasons, models.ReasonOnline); ok && !r.IsBaseline {
		t.Error("offline target produced a data-driven online reason")
	}
}
