// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"math"

	"github.com/tomtom215/squadmatch/internal/models"
)

// MaxRadialDistance is the largest allowed Euclidean distance of an
// accumulated trait vector from the center point before radial clipping.
const MaxRadialDistance = 120.0

// TraitEffect is one per-dimension delta applied when an answer option is
// chosen. Primary dimensions carry ±20, secondary dimensions ±10.
type TraitEffect struct {
	Dimension models.Dimension `json:"dimension"`
	Delta     float64          `json:"delta"`
}

// AnswerOption is one selectable option of a questionnaire question.
type AnswerOption struct {
	ID      string        `json:"id"`
	Text    string        `json:"text"`
	Effects []TraitEffect `json:"effects"`
}

// Question is one questionnaire question.
type Question struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Options []AnswerOption `json:"options"`
}

// QuestionSet is a fixed questionnaire against which answers are scored.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// option returns the option for a (question, option) id pair, or false when
// either id is unknown.
func (qs QuestionSet) option(questionID, optionID string) (AnswerOption, bool) {
	for _, q := range qs.Questions {
		if q.ID != questionID {
			continue
		}
		for _, o := range q.Options {
			if o.ID == optionID {
				return o, true
			}
		}
		return AnswerOption{}, false
	}
	return AnswerOption{}, false
}

// Answer records the option a user chose for one question.
type Answer struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
}

// Classifier performs trait-vector accumulation, radial clipping, and
// nearest-neighbor archetype classification over the fixed catalog. It is
// pure math: no error conditions, safe for concurrent use.
type Classifier struct {
	catalog []ArchetypeEntry
}

// NewClassifier returns a classifier over the canonical archetype catalog.
func NewClassifier() *Classifier {
	return &Classifier{catalog: Catalog()}
}

// Accumulate folds the chosen options' per-dimension deltas into a vector,
// starting from the center (50 in every dimension). Unanswered questions and
// unknown ids contribute nothing; application order does not matter. The
// raw sum is returned unbounded; callers chain ClipRadial before using it.
func (c *Classifier) Accumulate(answers []Answer, qs QuestionSet) models.TraitVector {
	dims := models.CenterVector().Dims()
	for _, ans := range answers {
		opt, ok := qs.option(ans.QuestionID, ans.OptionID)
		if !ok {
			continue
		}
		for _, eff := range opt.Effects {
			if eff.Dimension < 0 || eff.Dimension >= models.NumDimensions {
				continue
			}
			dims[eff.Dimension] += eff.Delta
		}
	}
	return models.VectorFromDims(dims)
}

// ClipRadial bounds a vector's Euclidean distance from the center point at
// MaxRadialDistance by rescaling its offset from center uniformly, preserving
// direction, then clamps every dimension into [0,100]. Clamping may reduce
// the effective distance slightly below the bound; that loss is accepted and
// not corrected further.
func (c *Classifier) ClipRadial(v models.TraitVector) models.TraitVector {
	dims := rescaleToRadius(v).Dims()
	for i := range dims {
		dims[i] = clampDim(dims[i])
	}
	return models.VectorFromDims(dims)
}

// rescaleToRadius pulls a vector back onto the MaxRadialDistance sphere
// around center when it lies outside, preserving direction. Vectors
// inside the sphere are returned unchanged.
func rescaleToRadius(v models.TraitVector) models.TraitVector {
	center := models.CenterVector()
	dist := EuclideanDistance(v, center)
	if dist <= MaxRadialDistance {
		return v
	}
	scale := MaxRadialDistance / dist
	dims := v.Dims()
	cd := center.Dims()
	for i := range dims {
		dims[i] = cd[i] + (dims[i]-cd[i])*scale
	}
	return models.VectorFromDims(dims)
}

// Classify returns the catalog entry whose ideal point is nearest to the
// vector by Euclidean distance. When two archetypes are exactly equidistant
// the earlier entry in the canonical catalog order wins; the comparison is
// strict so iteration order never decides.
func (c *Classifier) Classify(v models.TraitVector) ArchetypeEntry {
	best := c.catalog[0]
	bestDist := EuclideanDistance(v, best.Ideal)
	for _, e := range c.catalog[1:] {
		if d := EuclideanDistance(v, e.Ideal); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func clampDim(x float64) float64 {
	return math.Min(models.TraitMax, math.Max(models.TraitMin, x))
}
