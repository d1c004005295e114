// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"context"
	"errors"
	"sync"

	"github.com/tomtom215/squadmatch/internal/models"
)

var errStoreDown = errors.New("store unavailable")

// mockStore implements every repository interface from an in-memory
// fixture. Zero-value maps behave as "no data anywhere".
type mockStore struct {
	profiles    map[models.UserID]*models.Profile
	traits      map[models.UserID]*models.TraitsContext
	schedules   map[models.UserID][]models.ScheduleSlot
	libraries   map[models.UserID]*models.LibraryContext
	reliability map[models.UserID]*models.ReliabilityContext

	blocked  map[models.UserID][]models.UserID
	blockers map[models.UserID][]models.UserID
	friends  map[models.UserID][]models.UserID
	peers    map[models.UserID][]models.UserID
	pool     []models.UserID

	// failTraits makes the trait fetch for these users return
	// errStoreDown, simulating an infrastructure fault.
	failTraits map[models.UserID]bool

	poolErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		profiles:    map[models.UserID]*models.Profile{},
		traits:      map[models.UserID]*models.TraitsContext{},
		schedules:   map[models.UserID][]models.ScheduleSlot{},
		libraries:   map[models.UserID]*models.LibraryContext{},
		reliability: map[models.UserID]*models.ReliabilityContext{},
		blocked:     map[models.UserID][]models.UserID{},
		blockers:    map[models.UserID][]models.UserID{},
		friends:     map[models.UserID][]models.UserID{},
		peers:       map[models.UserID][]models.UserID{},
		failTraits:  map[models.UserID]bool{},
	}
}

func (m *mockStore) repos() Repositories {
	return Repositories{
		Profiles:      m,
		Traits:        m,
		Schedules:     m,
		Libraries:     m,
		Reliability:   m,
		Relationships: m,
		Pool:          m,
	}
}

func (m *mockStore) Profile(_ context.Context, id models.UserID) (*models.Profile, error) {
	return m.profiles[id], nil
}

func (m *mockStore) Traits(_ context.Context, id models.UserID) (*models.TraitsContext, error) {
	if m.failTraits[id] {
		return nil, errStoreDown
	}
	return m.traits[id], nil
}

func (m *mockStore) Slots(_ context.Context, id models.UserID) ([]models.ScheduleSlot, error) {
	return m.schedules[id], nil
}

func (m *mockStore) Library(_ context.Context, id models.UserID) (*models.LibraryContext, error) {
	return m.libraries[id], nil
}

func (m *mockStore) Reliability(_ context.Context, id models.UserID) (*models.ReliabilityContext, error) {
	return m.reliability[id], nil
}

func (m *mockStore) BlockedBy(_ context.Context, id models.UserID) ([]models.UserID, error) {
	return m.blocked[id], nil
}

func (m *mockStore) Blockers(_ context.Context, id models.UserID) ([]models.UserID, error) {
	return m.blockers[id], nil
}

func (m *mockStore) Friends(_ context.Context, id models.UserID) ([]models.UserID, error) {
	return m.friends[id], nil
}

func (m *mockStore) ChatPeers(_ context.Context, id models.UserID) ([]models.UserID, error) {
	return m.peers[id], nil
}

func (m *mockStore) ActiveUsers(_ context.Context) ([]models.UserID, error) {
	if m.poolErr != nil {
		return nil, m.poolErr
	}
	return m.pool, nil
}

// mockPublisher records MatchComputed calls. It is safe for the
// concurrent calls batch computation makes.
type mockPublisher struct {
	mu     sync.Mutex
	events []models.UserID
}

func (p *mockPublisher) MatchComputed(_ context.Context, _, targetID models.UserID, _ *models.MatchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, targetID)
}

func (p *mockPublisher) targets() []models.UserID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.UserID(nil), p.events...)
}
