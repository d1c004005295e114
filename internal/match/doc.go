// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package match implements the pairwise compatibility core: trait-vector
// classification over the 16-archetype catalog, candidate pool resolution,
// per-pair fact assembly into an immutable MatchContext, multi-factor score
// composition, and reason/tag derivation, composed by the Orchestrator for
// single-pair and concurrent batch evaluation.
//
// The package is a pure computation library. It consumes repositories as
// data-fetch interfaces (see repositories.go) and has no dependencies on
// other internal packages beyond models and logging; storage, transport,
// caching and resilience all live in surrounding packages and are injected.
//
// Error discipline: missing per-user facts ("cold start") are absorbed as
// absence and never surface as errors; only infrastructure failures from
// repositories propagate, and in batch mode they are isolated per candidate.
package match
