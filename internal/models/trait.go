// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package models

// Dimension identifies one axis of the 5-dimensional play-style trait space.
type Dimension int

const (
	// DimCooperation measures preference for cooperative play.
	DimCooperation Dimension = iota
	// DimExploration measures preference for discovery and open-ended play.
	DimExploration
	// DimStrategy measures preference for planning and tactical depth.
	DimStrategy
	// DimLeadership measures preference for directing a group.
	DimLeadership
	// DimSocial measures preference for social interaction around play.
	DimSocial

	// NumDimensions is the size of the trait space.
	NumDimensions = 5
)

// String returns a human-readable dimension name.
func (d Dimension) String() string {
	switch d {
	case DimCooperation:
		return "cooperation"
	case DimExploration:
		return "exploration"
	case DimStrategy:
		return "strategy"
	case DimLeadership:
		return "leadership"
	case DimSocial:
		return "social"
	default:
		return "unknown"
	}
}

// Trait space bounds. Every dimension of a valid TraitVector lies in
// [TraitMin, TraitMax]; TraitCenter is the neutral starting point.
const (
	TraitMin    = 0.0
	TraitMax    = 100.0
	TraitCenter = 50.0
)

// TraitVector is a point in [0,100]^5 representing a user's play-style
// profile. It is a value object: operations return new vectors.
type TraitVector struct {
	Cooperation float64 `json:"cooperation"`
	Exploration float64 `json:"exploration"`
	Strategy    float64 `json:"strategy"`
	Leadership  float64 `json:"leadership"`
	Social      float64 `json:"social"`
}

// CenterVector returns the neutral vector (50 in every dimension).
func CenterVector() TraitVector {
	return TraitVector{
		Cooperation: TraitCenter,
		Exploration: TraitCenter,
		Strategy:    TraitCenter,
		Leadership:  TraitCenter,
		Social:      TraitCenter,
	}
}

// Dim returns the value of the given dimension.
func (v TraitVector) Dim(d Dimension) float64 {
	switch d {
	case DimCooperation:
		return v.Cooperation
	case DimExploration:
		return v.Exploration
	case DimStrategy:
		return v.Strategy
	case DimLeadership:
		return v.Leadership
	case DimSocial:
		return v.Social
	default:
		return 0
	}
}

// WithDim returns a copy of the vector with the given dimension replaced.
func (v TraitVector) WithDim(d Dimension, value float64) TraitVector {
	switch d {
	case DimCooperation:
		v.Cooperation = value
	case DimExploration:
		v.Exploration = value
	case DimStrategy:
		v.Strategy = value
	case DimLeadership:
		v.Leadership = value
	case DimSocial:
		v.Social = value
	}
	return v
}

// Dims returns the vector as a fixed-size array in dimension order.
func (v TraitVector) Dims() [NumDimensions]float64 {
	return [NumDimensions]float64{v.Cooperation, v.Exploration, v.Strategy, v.Leadership, v.Social}
}

// VectorFromDims builds a TraitVector from an array in dimension order.
func VectorFromDims(dims [NumDimensions]float64) TraitVector {
	return TraitVector{
		Cooperation: dims[0],
		Exploration: dims[1],
		Strategy:    dims[2],
		Leadership:  dims[3],
		Social:      dims[4],
	}
}

// Archetype is the slug of one of the 16 fixed personality categories.
// The catalog binding each archetype to its canonical trait vector lives in
// the match package; an empty Archetype means "not resolved".
type Archetype string

// Resolved reports whether the archetype has been determined.
func (a Archetype) Resolved() bool {
	return a != ""
}
