// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"math"
	"testing"

	"github.com/tomtom215/squadmatch/internal/models"
)

func TestClassifyExactMatch(t *testing.T) {
	c := NewClassifier()
	for _, entry := range Catalog() {
		got := c.Classify(entry.Ideal)
		if got.Slug != entry.Slug {
			t.Errorf("ideal vector of %s classified as %s", entry.Slug, got.Slug)
		}
		if d := EuclideanDistance(entry.Ideal, got.Ideal); d != 0 {
			t.Errorf("distance to own ideal = %v, want 0", d)
		}
	}
}

func TestClassifyDeterminism(t *testing.T) {
	c := NewClassifier()
	v := models.TraitVector{Cooperation: 62, Exploration: 41, Strategy: 77, Leadership: 58, Social: 33}
	first := c.Classify(v)
	for i := 0; i < 50; i++ {
		if got := c.Classify(v); got.Slug != first.Slug {
			t.Fatalf("classification changed between calls: %s then %s", first.Slug, got.Slug)
		}
	}
}

func TestClassifyTieBreaksToEarliestEntry(t *testing.T) {
	c := NewClassifier()
	vanguard, _ := CatalogEntry(ArchetypeVanguard)
	commander, _ := CatalogEntry(ArchetypeCommander)

	// The midpoint of these two ideals is exactly equidistant from both
	// and closer to them than to any other archetype, so the earlier
	// catalog entry must win.
	var mid [models.NumDimensions]float64
	a, b := vanguard.Ideal.Dims(), commander.Ideal.Dims()
	for i := range mid {
		mid[i] = (a[i] + b[i]) / 2
	}
	v := models.VectorFromDims(mid)

	if dv, dc := EuclideanDistance(v, vanguard.Ideal), EuclideanDistance(v, commander.Ideal); dv != dc {
		t.Fatalf("fixture not a tie: %v vs %v", dv, dc)
	}
	if got := c.Classify(v); got.Slug != ArchetypeVanguard {
		t.Errorf("equidistant vector classified as %s, want %s", got.Slug, ArchetypeVanguard)
	}
}

func TestAccumulateFromCenter(t *testing.T) {
	c := NewClassifier()
	qs := DefaultQuestionSet()

	v := c.Accumulate(nil, qs)
	if v != models.CenterVector() {
		t.Errorf("no answers should yield the center vector, got %+v", v)
	}

	v = c.Accumulate([]Answer{{QuestionID: "q_session_start", OptionID: "lead"}}, qs)
	want := models.TraitVector{
		Cooperation: 50,
		Exploration: 50,
		Strategy:    60,
		Leadership:  70,
		Social:      60,
	}
	if v != want {
		t.Errorf("Accumulate = %+v, want %+v", v, want)
	}
}

func TestAccumulateIgnoresUnknownIDs(t *testing.T) {
	c := NewClassifier()
	qs := DefaultQuestionSet()

	answers := []Answer{
		{QuestionID: "no_such_question", OptionID: "lead"},
		{QuestionID: "q_session_start", OptionID: "no_such_option"},
	}
	if v := c.Accumulate(answers, qs); v != models.CenterVector() {
		t.Errorf("unknown ids must contribute nothing, got %+v", v)
	}
}

func TestAccumulateOrderIndependent(t *testing.T) {
	c := NewClassifier()
	qs := DefaultQuestionSet()

	answers := []Answer{
		{QuestionID: "q_session_start", OptionID: "scout"},
		{QuestionID: "q_plan", OptionID: "deep"},
		{QuestionID: "q_conflict", OptionID: "mediate"},
	}
	reversed := []Answer{answers[2], answers[1], answers[0]}

	if a, b := c.Accumulate(answers, qs), c.Accumulate(reversed, qs); a != b {
		t.Errorf("accumulation is order-dependent: %+v vs %+v", a, b)
	}
}

func TestRadialClipBound(t *testing.T) {
	c := NewClassifier()
	center := models.CenterVector()

	vectors := []models.TraitVector{
		{Cooperation: 250, Exploration: 50, Strategy: 50, Leadership: 50, Social: 50},
		{Cooperation: 190, Exploration: -90, Strategy: 150, Leadership: 10, Social: 200},
		{Cooperation: -100, Exploration: -100, Strategy: -100, Leadership: -100, Social: -100},
	}
	for _, v := range vectors {
		if EuclideanDistance(v, center) <= MaxRadialDistance {
			t.Fatalf("fixture vector %+v not outside the radial bound", v)
		}

		rescaled := rescaleToRadius(v)
		if d := EuclideanDistance(rescaled, center); math.Abs(d-MaxRadialDistance) > 1e-9 {
			t.Errorf("rescaled distance = %v, want %v", d, MaxRadialDistance)
		}

		clipped := c.ClipRadial(v)
		for i, x := range clipped.Dims() {
			if x < models.TraitMin || x > models.TraitMax {
				t.Errorf("dimension %d = %v outside [0,100] after clip", i, x)
			}
		}
	}
}

func TestRadialClipInsideBoundUnchanged(t *testing.T) {
	c := NewClassifier()
	v := models.TraitVector{Cooperation: 80, Exploration: 30, Strategy: 55, Leadership: 65, Social: 45}
	if got := c.ClipRadial(v); got != v {
		t.Errorf("in-bound vector modified by clip: %+v -> %+v", v, got)
	}
}

func TestCompatibilitySymmetric(t *testing.T) {
	pairs := []struct {
		a, b models.Archetype
		want CompatTier
	}{
		{ArchetypeVanguard, ArchetypeGuardian, TierBest},
		{ArchetypeGuardian, ArchetypeVanguard, TierBest},
		{ArchetypeScout, ArchetypeWanderer, TierGood},
		{ArchetypeWanderer, ArchetypeScout, TierGood},
		{ArchetypeMaverick, ArchetypeGuardian, TierChallenging},
		{ArchetypeVanguard, ArchetypeVanguard, TierBest},
		{ArchetypeVanguard, ArchetypeSocialite, TierNeutral},
		{ArchetypeVanguard, "", TierNeutral},
		{"", "", TierNeutral},
	}
	for _, p := range pairs {
		if got := Compatibility(p.a, p.b); got != p.want {
			t.Errorf("Compatibility(%q, %q) = %v, want %v", p.a, p.b, got, p.want)
		}
	}
}

func TestSimilarityScoreBounds(t *testing.T) {
	a := models.TraitVector{}
	b := models.TraitVector{Cooperation: 100, Exploration: 100, Strategy: 100, Leadership: 100, Social: 100}
	if got := SimilarityScore(a, b); math.Abs(got) > 1e-9 {
		t.Errorf("opposite corners should score 0, got %v", got)
	}
	if got := SimilarityScore(a, a); math.Abs(got-100) > 1e-9 {
		t.Errorf("identical vectors should score 100, got %v", got)
	}
}
