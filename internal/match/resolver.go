// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/squadmatch/internal/models"
)

// CandidateResolver produces the set of users a viewer may be matched
// against: the active pool minus the viewer themselves, anyone blocked
// in either direction, established friends, and existing chat peers.
type CandidateResolver struct {
	pool          PoolRepository
	relationships RelationshipRepository
}

// NewCandidateResolver returns a resolver backed by the given stores.
func NewCandidateResolver(pool PoolRepository, relationships RelationshipRepository) *CandidateResolver {
	return &CandidateResolver{pool: pool, relationships: relationships}
}

// Resolve fetches the pool and all exclusion edges concurrently, then
// filters. Pool order is preserved in the result.
func (r *CandidateResolver) Resolve(ctx context.Context, viewerID models.UserID) ([]models.UserID, error) {
	g, gctx := errgroup.WithContext(ctx)

	var pool, blocked, blockers, friends, peers []models.UserID
	g.Go(func() error {
		p, err := r.pool.ActiveUsers(gctx)
		if err != nil {
			return fmt.Errorf("active users: %w", err)
		}
		pool = p
		return nil
	})
	g.Go(func() error {
		b, err := r.relationships.BlockedBy(gctx, viewerID)
		if err != nil {
			return fmt.Errorf("blocked: %w", err)
		}
		blocked = b
		return nil
	})
	g.Go(func() error {
		b, err := r.relationships.Blockers(gctx, viewerID)
		if err != nil {
			return fmt.Errorf("blockers: %w", err)
		}
		blockers = b
		return nil
	})
	g.Go(func() error {
		f, err := r.relationships.Friends(gctx, viewerID)
		if err != nil {
			return fmt.Errorf("friends: %w", err)
		}
		friends = f
		return nil
	})
	g.Go(func() error {
		p, err := r.relationships.ChatPeers(gctx, viewerID)
		if err != nil {
			return fmt.Errorf("chat peers: %w", err)
		}
		peers = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excluded := make(map[models.UserID]struct{}, 1+len(blocked)+len(blockers)+len(friends)+len(peers))
	excluded[viewerID] = struct{}{}
	for _, set := range [][]models.UserID{blocked, blockers, friends, peers} {
		for _, id := range set {
			excluded[id] = struct{}{}
		}
	}

	candidates := make([]models.UserID, 0, len(pool))
	for _, id := range pool {
		if _, skip := excluded[id]; skip {
			continue
		}
		candidates = append(candidates, id)
	}
	return candidates, nil
}
