// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package models defines the domain value objects shared across Squadmatch:
// trait vectors, archetypes, per-user match inputs with their optional
// sub-contexts, match results with structured reasons and tags, and the
// standard API response envelope.
//
// All match-domain types in this package are immutable value objects. They
// are created fresh per computation and never persisted by the match core;
// the store layer has its own row types.
package models
