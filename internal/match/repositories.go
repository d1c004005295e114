// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"context"

	"github.com/tomtom215/squadmatch/internal/models"
)

// Repository interfaces are the injection boundary between the matching
// core and storage. Implementations return a nil value (not an error)
// when a user simply has no data for that concern; errors are reserved
// for infrastructure failures.

// ProfileRepository resolves user identity and presence.
type ProfileRepository interface {
	// Profile returns nil if the user does not exist.
	Profile(ctx context.Context, id models.UserID) (*models.Profile, error)
}

// TraitRepository resolves classified trait vectors.
type TraitRepository interface {
	// Traits returns nil if the user has not completed classification.
	Traits(ctx context.Context, id models.UserID) (*models.TraitsContext, error)
}

// ScheduleRepository resolves recurring play-time slots.
type ScheduleRepository interface {
	// Slots returns an empty slice if the user has no declared schedule.
	Slots(ctx context.Context, id models.UserID) ([]models.ScheduleSlot, error)
}

// LibraryRepository resolves owned titles and play volume.
type LibraryRepository interface {
	// Library returns nil if the user has no recorded library.
	Library(ctx context.Context, id models.UserID) (*models.LibraryContext, error)
}

// ReliabilityRepository resolves party-history reliability readings.
type ReliabilityRepository interface {
	// Reliability returns nil if the user has no party history.
	Reliability(ctx context.Context, id models.UserID) (*models.ReliabilityContext, error)
}

// RelationshipRepository resolves the social graph edges that exclude
// users from each other's candidate pools.
type RelationshipRepository interface {
	// BlockedBy returns users the given user has blocked.
	BlockedBy(ctx context.Context, id models.UserID) ([]models.UserID, error)
	// Blockers returns users who have blocked the given user.
	Blockers(ctx context.Context, id models.UserID) ([]models.UserID, error)
	// Friends returns established friends of the given user.
	Friends(ctx context.Context, id models.UserID) ([]models.UserID, error)
	// ChatPeers returns users the given user already has an open
	// conversation with.
	ChatPeers(ctx context.Context, id models.UserID) ([]models.UserID, error)
}

// PoolRepository enumerates the raw candidate universe.
type PoolRepository interface {
	// ActiveUsers returns all users eligible for matching before
	// relationship filtering.
	ActiveUsers(ctx context.Context) ([]models.UserID, error)
}

// Repositories bundles every store the matching core depends on.
type Repositories struct {
	Profiles      ProfileRepository
	Traits        TraitRepository
	Schedules     ScheduleRepository
	Libraries     LibraryRepository
	Reliability   ReliabilityRepository
	Relationships RelationshipRepository
	Pool          PoolRepository
}
