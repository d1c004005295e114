// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

// Relationship kinds as stored in the relationships table.
const (
	relBlocked = "blocked"
	relFriend  = "friend"
	relChat    = "chat"
)

// Profile returns the user's profile, or nil when the user is unknown.
func (s *Store) Profile(ctx context.Context, id models.UserID) (*models.Profile, error) {
	start := time.Now()
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, display_name, archetype, online FROM users WHERE id = ?`, string(id))

	var p models.Profile
	err := row.Scan(&p.ID, &p.DisplayName, &p.Archetype, &p.Online)
	metrics.RecordDBQuery("select", "users", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %s: %w", id, err)
	}
	return &p, nil
}

// Traits returns the user's trait record, or nil when unclassified.
func (s *Store) Traits(ctx context.Context, id models.UserID) (*models.TraitsContext, error) {
	start := time.Now()
	row := s.conn.QueryRowContext(ctx,
		`SELECT cooperation, exploration, strategy, leadership, social, archetype
		 FROM traits WHERE user_id = ?`, string(id))

	var t models.TraitsContext
	err := row.Scan(
		&t.Vector.Cooperation,
		&t.Vector.Exploration,
		&t.Vector.Strategy,
		&t.Vector.Leadership,
		&t.Vector.Social,
		&t.Archetype,
	)
	metrics.RecordDBQuery("select", "traits", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query traits %s: %w", id, err)
	}
	return &t, nil
}

// Slots returns the user's schedule slots; empty when none declared.
func (s *Store) Slots(ctx context.Context, id models.UserID) ([]models.ScheduleSlot, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx,
		`SELECT day, slot FROM schedule_slots WHERE user_id = ? ORDER BY day, slot`, string(id))
	metrics.RecordDBQuery("select", "schedule_slots", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query schedule %s: %w", id, err)
	}
	defer closeQuietly(rows)

	var slots []models.ScheduleSlot
	for rows.Next() {
		var sl models.ScheduleSlot
		if err := rows.Scan(&sl.Day, &sl.Slot); err != nil {
			return nil, fmt.Errorf("scan schedule slot: %w", err)
		}
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}

// Library returns the user's library record, or nil when no titles are
// known for them.
func (s *Store) Library(ctx context.Context, id models.UserID) (*models.LibraryContext, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx,
		`SELECT title_id FROM library_titles WHERE user_id = ? ORDER BY title_id`, string(id))
	metrics.RecordDBQuery("select", "library_titles", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query library %s: %w", id, err)
	}
	defer closeQuietly(rows)

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan library title: %w", err)
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, nil
	}

	lib := &models.LibraryContext{TitleIDs: titles}
	row := s.conn.QueryRowContext(ctx,
		`SELECT total_play_hours FROM library_stats WHERE user_id = ?`, string(id))
	if err := row.Scan(&lib.TotalPlayHours); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query library stats %s: %w", id, err)
	}
	return lib, nil
}

// Reliability returns the user's reliability record, or nil when they
// have no party history.
func (s *Store) Reliability(ctx context.Context, id models.UserID) (*models.ReliabilityContext, error) {
	start := time.Now()
	row := s.conn.QueryRowContext(ctx,
		`SELECT party_count, score FROM reliability WHERE user_id = ?`, string(id))

	var r models.ReliabilityContext
	err := row.Scan(&r.PartyCount, &r.Score)
	metrics.RecordDBQuery("select", "reliability", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query reliability %s: %w", id, err)
	}
	return &r, nil
}

// BlockedBy returns users the given user has blocked.
func (s *Store) BlockedBy(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return s.related(ctx, id, relBlocked, false)
}

// Blockers returns users who have blocked the given user.
func (s *Store) Blockers(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return s.related(ctx, id, relBlocked, true)
}

// Friends returns the user's established friends.
func (s *Store) Friends(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return s.related(ctx, id, relFriend, false)
}

// ChatPeers returns users sharing an open conversation with the user.
func (s *Store) ChatPeers(ctx context.Context, id models.UserID) ([]models.UserID, error) {
	return s.related(ctx, id, relChat, false)
}

// related fetches one edge kind from the relationships table. With
// inverse set, the edge direction is reversed (rows pointing at id).
func (s *Store) related(ctx context.Context, id models.UserID, kind string, inverse bool) ([]models.UserID, error) {
	query := `SELECT other_id FROM relationships WHERE user_id = ? AND kind = ?`
	if inverse {
		query = `SELECT user_id FROM relationships WHERE other_id = ? AND kind = ?`
	}

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, query, string(id), kind)
	metrics.RecordDBQuery("select", "relationships", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query %s relationships for %s: %w", kind, id, err)
	}
	defer closeQuietly(rows)

	var ids []models.UserID
	for rows.Next() {
		var other models.UserID
		if err := rows.Scan(&other); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		ids = append(ids, other)
	}
	return ids, rows.Err()
}

// ActiveUsers returns all user ids, the raw candidate pool.
func (s *Store) ActiveUsers(ctx context.Context) ([]models.UserID, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query user pool: %w", err)
	}
	defer closeQuietly(rows)

	var ids []models.UserID
	for rows.Next() {
		var id models.UserID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ignoreNoRows maps sql.ErrNoRows to nil so absence is not counted as a
// query error in metrics.
func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func closeQuietly(rows *sql.Rows) {
	_ = rows.Close()
}
