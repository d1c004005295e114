// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"math"

	"github.com/tomtom215/squadmatch/internal/models"
)

// Distance primitives over the trait space. Classification uses Euclidean
// distance only; the other metrics are exposed for reuse by surrounding
// analytics code.

// EuclideanDistance returns the straight-line distance between two vectors.
func EuclideanDistance(a, b models.TraitVector) float64 {
	ad, bd := a.Dims(), b.Dims()
	var sum float64
	for i := range ad {
		d := ad[i] - bd[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanDistance returns the per-dimension absolute difference sum.
func ManhattanDistance(a, b models.TraitVector) float64 {
	ad, bd := a.Dims(), b.Dims()
	var sum float64
	for i := range ad {
		sum += math.Abs(ad[i] - bd[i])
	}
	return sum
}

// CosineSimilarity returns the cosine of the angle between the two vectors
// in [−1, 1]. Vectors with zero magnitude yield 0.
func CosineSimilarity(a, b models.TraitVector) float64 {
	ad, bd := a.Dims(), b.Dims()
	var dot, magA, magB float64
	for i := range ad {
		dot += ad[i] * bd[i]
		magA += ad[i] * ad[i]
		magB += bd[i] * bd[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// WeightedEuclideanDistance returns the Euclidean distance with each
// dimension's squared difference scaled by the corresponding weight.
// Negative weights are treated as zero.
func WeightedEuclideanDistance(a, b models.TraitVector, weights [models.NumDimensions]float64) float64 {
	ad, bd := a.Dims(), b.Dims()
	var sum float64
	for i := range ad {
		w := weights[i]
		if w < 0 {
			w = 0
		}
		d := ad[i] - bd[i]
		sum += w * d * d
	}
	return math.Sqrt(sum)
}

// maxPairDistance is the largest possible Euclidean distance between two
// points of the trait space (opposite corners of [0,100]^5).
var maxPairDistance = math.Sqrt(models.NumDimensions * models.TraitMax * models.TraitMax)

// SimilarityScore maps the Euclidean distance between two vectors onto a
// [0,100] similarity, 100 meaning identical.
func SimilarityScore(a, b models.TraitVector) float64 {
	return (1 - EuclideanDistance(a, b)/maxPairDistance) * 100
}
