// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package store

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/match"
	"github.com/tomtom215/squadmatch/internal/models"
)

// SeedMockData populates the database with a demo roster. Intended for
// evaluation setups and screenshot capture, not production.
func (s *Store) SeedMockData(ctx context.Context) error {
	logging.Info().Msg("Seeding database with mock roster")

	names := []string{
		"Alice", "Bob", "Charlie", "Dana", "Emre",
		"Freya", "Grace", "Hana", "Ines", "Jack",
		"Kai", "Lena", "Mateo", "Nadia", "Omar",
	}
	titles := []string{
		"galaxy-raiders", "dungeon-forge", "stellar-drift", "night-garrison",
		"frostpeak", "ember-tactics", "cove-of-tides", "rust-arena",
		"skybound", "meadow-keep", "vault-runners", "quiet-harbor",
	}
	allSlots := []models.ScheduleSlot{
		{Day: models.DayWeekday, Slot: models.SlotEvening},
		{Day: models.DayWeekday, Slot: models.SlotLateNight},
		{Day: models.DayWeekend, Slot: models.SlotMorning},
		{Day: models.DayWeekend, Slot: models.SlotAfternoon},
		{Day: models.DayWeekend, Slot: models.SlotEvening},
	}

	// Fixed seed keeps demo rosters stable across restarts.
	rng := rand.New(rand.NewSource(42))
	classifier := match.NewClassifier()
	catalog := match.Catalog()

	ids := make([]models.UserID, 0, len(names))
	for _, name := range names {
		id := models.UserID(uuid.New().String())
		ids = append(ids, id)

		// Start near an archetype ideal and jitter, so the roster covers
		// the catalog with plausible variety.
		ideal := catalog[rng.Intn(len(catalog))].Ideal
		dims := ideal.Dims()
		for i := range dims {
			dims[i] += rng.Float64()*30 - 15
		}
		vec := classifier.ClipRadial(models.VectorFromDims(dims))
		entry := classifier.Classify(vec)

		profile := &models.Profile{
			ID:          id,
			DisplayName: name,
			Archetype:   entry.Slug,
			Online:      rng.Float64() < 0.4,
		}
		if err := s.UpsertProfile(ctx, profile); err != nil {
			return fmt.Errorf("seed profile %s: %w", name, err)
		}
		if err := s.SaveTraits(ctx, id, &models.TraitsContext{Vector: vec, Archetype: entry.Slug}); err != nil {
			return fmt.Errorf("seed traits %s: %w", name, err)
		}

		// Most users declare a schedule; a few stay cold-start.
		if rng.Float64() < 0.8 {
			n := 1 + rng.Intn(3)
			slots := make([]models.ScheduleSlot, 0, n)
			for _, idx := range rng.Perm(len(allSlots))[:n] {
				slots = append(slots, allSlots[idx])
			}
			if err := s.ReplaceSlots(ctx, id, slots); err != nil {
				return fmt.Errorf("seed schedule %s: %w", name, err)
			}
		}

		if rng.Float64() < 0.7 {
			n := 2 + rng.Intn(5)
			owned := make([]string, 0, n)
			for _, idx := range rng.Perm(len(titles))[:n] {
				owned = append(owned, titles[idx])
			}
			lib := &models.LibraryContext{
				TitleIDs:       owned,
				TotalPlayHours: 20 + rng.Float64()*580,
			}
			if err := s.SaveLibrary(ctx, id, lib); err != nil {
				return fmt.Errorf("seed library %s: %w", name, err)
			}
		}

		if rng.Float64() < 0.6 {
			rel := &models.ReliabilityContext{
				PartyCount: 1 + rng.Intn(40),
				Score:      0.5 + rng.Float64()*0.5,
			}
			if err := s.SaveReliability(ctx, id, rel); err != nil {
				return fmt.Errorf("seed reliability %s: %w", name, err)
			}
		}
	}

	// A sparse social graph: some friendships, one block, a chat pair.
	for i := 0; i+1 < len(ids); i += 4 {
		if err := s.AddFriendship(ctx, ids[i], ids[i+1]); err != nil {
			return fmt.Errorf("seed friendship: %w", err)
		}
	}
	if len(ids) >= 4 {
		if err := s.BlockUser(ctx, ids[0], ids[2]); err != nil {
			return fmt.Errorf("seed block: %w", err)
		}
		if err := s.AddChatPeers(ctx, ids[1], ids[3]); err != nil {
			return fmt.Errorf("seed chat peers: %w", err)
		}
	}

	logging.Info().Int("users", len(ids)).Msg("Mock roster seeded")
	return nil
}
