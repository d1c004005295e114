// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) *ResultCache {
	t.Helper()
	c, err := New(&config.CacheConfig{InMemory: true, TTL: ttl})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return c
}

func sampleResult(score int) *models.MatchResult {
	return &models.MatchResult{
		Score:           score,
		IsOnlineMatched: true,
		Tags:            []models.Tag{{Label: "style"}},
		ComputedAt:      time.Now().UTC(),
	}
}

func TestGetMatchMiss(t *testing.T) {
	c := newTestCache(t, time.Minute)
	if _, ok := c.GetMatch(context.Background(), "u1", "u2"); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	want := sampleResult(87)
	if err := c.PutMatch(ctx, "u1", "u2", want); err != nil {
		t.Fatalf("PutMatch: %v", err)
	}

	got, ok := c.GetMatch(ctx, "u1", "u2")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if got.Score != 87 || !got.IsOnlineMatched || len(got.Tags) != 1 {
		t.Fatalf("unexpected cached result: %+v", got)
	}

	// The pair key is directional.
	if _, ok := c.GetMatch(ctx, "u2", "u1"); ok {
		t.Fatal("reverse pair should miss")
	}
}

func TestEntryExpires(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)
	ctx := context.Background()

	if err := c.PutMatch(ctx, "u1", "u2", sampleResult(60)); err != nil {
		t.Fatalf("PutMatch: %v", err)
	}
	if _, ok := c.GetMatch(ctx, "u1", "u2"); !ok {
		t.Fatal("expected hit before TTL")
	}

	time.Sleep(100 * time.Millisecond)
	if _, ok := c.GetMatch(ctx, "u1", "u2"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestInvalidateUserBothSides(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	pairs := [][2]models.UserID{
		{"u1", "u2"},
		{"u3", "u1"},
		{"u3", "u4"},
	}
	for _, p := range pairs {
		if err := c.PutMatch(ctx, p[0], p[1], sampleResult(50)); err != nil {
			t.Fatalf("PutMatch %v: %v", p, err)
		}
	}

	if err := c.InvalidateUser(ctx, "u1"); err != nil {
		t.Fatalf("InvalidateUser: %v", err)
	}

	if _, ok := c.GetMatch(ctx, "u1", "u2"); ok {
		t.Fatal("viewer-side entry should be invalidated")
	}
	if _, ok := c.GetMatch(ctx, "u3", "u1"); ok {
		t.Fatal("target-side entry should be invalidated")
	}
	if _, ok := c.GetMatch(ctx, "u3", "u4"); !ok {
		t.Fatal("unrelated entry should survive")
	}
}
