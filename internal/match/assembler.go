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

// ContextAssembler gathers every fact source for a pair of users into an
// immutable MatchContext. Sub-contexts a user has no data for are left
// nil; downstream stages treat nil as "unknown" rather than zero.
type ContextAssembler struct {
	repos Repositories
}

// NewContextAssembler returns an assembler backed by the given stores.
func NewContextAssembler(repos Repositories) *ContextAssembler {
	return &ContextAssembler{repos: repos}
}

// Assemble fetches both sides of the pair concurrently. A store error on
// either side fails the whole assembly.
func (a *ContextAssembler) Assemble(ctx context.Context, viewerID, targetID models.UserID) (*models.MatchContext, error) {
	g, gctx := errgroup.WithContext(ctx)

	var viewer, target *models.UserMatchInput
	g.Go(func() error {
		in, err := a.assembleUser(gctx, viewerID)
		if err != nil {
			return fmt.Errorf("assemble viewer %s: %w", viewerID, err)
		}
		viewer = in
		return nil
	})
	g.Go(func() error {
		in, err := a.assembleUser(gctx, targetID)
		if err != nil {
			return fmt.Errorf("assemble target %s: %w", targetID, err)
		}
		target = in
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.MatchContext{Viewer: *viewer, Target: *target}, nil
}

// assembleUser fans out one fetch per fact source.
func (a *ContextAssembler) assembleUser(ctx context.Context, id models.UserID) (*models.UserMatchInput, error) {
	in := &models.UserMatchInput{ID: id}

	g, gctx := errgroup.WithContext(ctx)

	var profile *models.Profile
	g.Go(func() error {
		p, err := a.repos.Profiles.Profile(gctx, id)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		t, err := a.repos.Traits.Traits(gctx, id)
		if err != nil {
			return fmt.Errorf("traits: %w", err)
		}
		in.Traits = t
		return nil
	})

	var slots []models.ScheduleSlot
	g.Go(func() error {
		s, err := a.repos.Schedules.Slots(gctx, id)
		if err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		slots = s
		return nil
	})

	g.Go(func() error {
		l, err := a.repos.Libraries.Library(gctx, id)
		if err != nil {
			return fmt.Errorf("library: %w", err)
		}
		in.Library = l
		return nil
	})

	g.Go(func() error {
		r, err := a.repos.Reliability.Reliability(gctx, id)
		if err != nil {
			return fmt.Errorf("reliability: %w", err)
		}
		in.Reliability = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The activity sub-context exists only when the user declared at
	// least one schedule slot. Presence is copied from the profile so a
	// missing profile reads as offline.
	if len(slots) > 0 {
		act := &models.ActivityContext{Slots: slots}
		if profile != nil {
			act.Online = profile.Online
		}
		in.Activity = act
	}

	return in, nil
}
