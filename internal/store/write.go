// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

// UpsertProfile creates or updates a user row.
func (s *Store) UpsertProfile(ctx context.Context, p *models.Profile) error {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (id, display_name, archetype, online) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			archetype = excluded.archetype,
			online = excluded.online`,
		string(p.ID), p.DisplayName, string(p.Archetype), p.Online)
	metrics.RecordDBQuery("upsert", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}
	return nil
}

// SaveTraits stores a user's classified trait record and mirrors the
// archetype onto the profile row.
func (s *Store) SaveTraits(ctx context.Context, id models.UserID, t *models.TraitsContext) error {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO traits (user_id, cooperation, exploration, strategy, leadership, social, archetype)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			cooperation = excluded.cooperation,
			exploration = excluded.exploration,
			strategy = excluded.strategy,
			leadership = excluded.leadership,
			social = excluded.social,
			archetype = excluded.archetype,
			updated_at = now()`,
		string(id),
		t.Vector.Cooperation, t.Vector.Exploration, t.Vector.Strategy,
		t.Vector.Leadership, t.Vector.Social,
		string(t.Archetype))
	metrics.RecordDBQuery("upsert", "traits", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save traits %s: %w", id, err)
	}

	_, err = s.conn.ExecContext(ctx,
		`UPDATE users SET archetype = ? WHERE id = ?`, string(t.Archetype), string(id))
	if err != nil {
		return fmt.Errorf("mirror archetype %s: %w", id, err)
	}
	return nil
}

// ReplaceSlots replaces a user's schedule with the given slots.
func (s *Store) ReplaceSlots(ctx context.Context, id models.UserID, slots []models.ScheduleSlot) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM schedule_slots WHERE user_id = ?`, string(id)); err != nil {
		return fmt.Errorf("clear schedule %s: %w", id, err)
	}
	for _, sl := range slots {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_slots (user_id, day, slot) VALUES (?, ?, ?)
			 ON CONFLICT DO NOTHING`,
			string(id), string(sl.Day), string(sl.Slot)); err != nil {
			return fmt.Errorf("insert schedule slot %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// SaveLibrary replaces a user's library titles and play-hours total.
func (s *Store) SaveLibrary(ctx context.Context, id models.UserID, lib *models.LibraryContext) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin library replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM library_titles WHERE user_id = ?`, string(id)); err != nil {
		return fmt.Errorf("clear library %s: %w", id, err)
	}
	for _, title := range lib.TitleIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO library_titles (user_id, title_id) VALUES (?, ?)
			 ON CONFLICT DO NOTHING`, string(id), title); err != nil {
			return fmt.Errorf("insert library title %s: %w", id, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO library_stats (user_id, total_play_hours) VALUES (?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET total_play_hours = excluded.total_play_hours`,
		string(id), lib.TotalPlayHours); err != nil {
		return fmt.Errorf("upsert library stats %s: %w", id, err)
	}
	return tx.Commit()
}

// SaveReliability stores a user's reliability reading.
func (s *Store) SaveReliability(ctx context.Context, id models.UserID, r *models.ReliabilityContext) error {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO reliability (user_id, party_count, score) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			party_count = excluded.party_count,
			score = excluded.score`,
		string(id), r.PartyCount, r.Score)
	metrics.RecordDBQuery("upsert", "reliability", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save reliability %s: %w", id, err)
	}
	return nil
}

// AddRelationship records a directed edge of the given kind.
func (s *Store) AddRelationship(ctx context.Context, from, to models.UserID, kind string) error {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO relationships (user_id, other_id, kind) VALUES (?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		string(from), string(to), kind)
	metrics.RecordDBQuery("insert", "relationships", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("add %s relationship %s -> %s: %w", kind, from, to, err)
	}
	return nil
}

// AddFriendship records a mutual friend edge.
func (s *Store) AddFriendship(ctx context.Context, a, b models.UserID) error {
	if err := s.AddRelationship(ctx, a, b, relFriend); err != nil {
		return err
	}
	return s.AddRelationship(ctx, b, a, relFriend)
}

// BlockUser records that from has blocked to.
func (s *Store) BlockUser(ctx context.Context, from, to models.UserID) error {
	return s.AddRelationship(ctx, from, to, relBlocked)
}

// AddChatPeers records a mutual open-conversation edge.
func (s *Store) AddChatPeers(ctx context.Context, a, b models.UserID) error {
	if err := s.AddRelationship(ctx, a, b, relChat); err != nil {
		return err
	}
	return s.AddRelationship(ctx, b, a, relChat)
}

// SetOnline updates a user's presence flag.
func (s *Store) SetOnline(ctx context.Context, id models.UserID, online bool) error {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx,
		`UPDATE users SET online = ? WHERE id = ?`, online, string(id))
	metrics.RecordDBQuery("update", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("set online %s: %w", id, err)
	}
	return nil
}
