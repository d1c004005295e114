// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package match

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

// EventPublisher receives a notification after each successful pairwise
// computation. A nil publisher disables emission.
type EventPublisher interface {
	MatchComputed(ctx context.Context, viewerID, targetID models.UserID, result *models.MatchResult)
}

// Orchestrator wires the assembler, composer, and reason generator into
// the two entry points the service layer calls.
type Orchestrator struct {
	assembler   *ContextAssembler
	resolver    *CandidateResolver
	composer    *ScoreComposer
	reasons     *ReasonTagGenerator
	publisher   EventPublisher
	concurrency int
	now         func() time.Time
}

// NewOrchestrator builds an orchestrator over the given stores.
// publisher may be nil.
func NewOrchestrator(repos Repositories, publisher EventPublisher) *Orchestrator {
	return &Orchestrator{
		assembler: NewContextAssembler(repos),
		resolver:  NewCandidateResolver(repos.Pool, repos.Relationships),
		composer:  NewScoreComposer(),
		reasons:   NewReasonTagGenerator(),
		publisher: publisher,
		now:       time.Now,
	}
}

// SetBatchConcurrency caps concurrent candidate evaluations in
// ComputeBatch. n <= 0 leaves the fan-out unbounded.
func (o *Orchestrator) SetBatchConcurrency(n int) {
	o.concurrency = n
}

// ComputeOne scores a single viewer/target pair. Infrastructure
// failures during assembly propagate to the caller.
func (o *Orchestrator) ComputeOne(ctx context.Context, viewerID, targetID models.UserID) (*models.MatchResult, error) {
	mc, err := o.assembler.Assemble(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}

	score, online := o.composer.Compose(mc)
	reasons, tags := o.reasons.Generate(mc)

	result := &models.MatchResult{
		Score:           score,
		IsOnlineMatched: online,
		Reasons:         reasons,
		Tags:            tags,
		ComputedAt:      o.now().UTC(),
	}

	if o.publisher != nil {
		o.publisher.MatchComputed(ctx, viewerID, targetID, result)
	}
	return result, nil
}

// Candidates returns the filtered candidate pool for a viewer without
// scoring it.
func (o *Orchestrator) Candidates(ctx context.Context, viewerID models.UserID) ([]models.UserID, error) {
	return o.resolver.Resolve(ctx, viewerID)
}

// ComputeBatch resolves the viewer's candidates and scores each one
// concurrently, preserving pool enumeration order in the output. A
// candidate whose fact-fetch fails is dropped; the rest are unaffected.
func (o *Orchestrator) ComputeBatch(ctx context.Context, viewerID models.UserID) ([]models.MatchSummary, error) {
	candidates, err := o.resolver.Resolve(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []models.MatchSummary{}, nil
	}

	type slot struct {
		result *models.MatchResult
		err    error
	}
	slots := make([]slot, len(candidates))

	var sem chan struct{}
	if o.concurrency > 0 {
		sem = make(chan struct{}, o.concurrency)
	}

	var wg sync.WaitGroup
	for i, targetID := range candidates {
		wg.Add(1)
		go func(i int, targetID models.UserID) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			r, err := o.ComputeOne(ctx, viewerID, targetID)
			slots[i] = slot{result: r, err: err}
		}(i, targetID)
	}
	wg.Wait()

	summaries := make([]models.MatchSummary, 0, len(candidates))
	for i, s := range slots {
		if s.err != nil {
			logging.Warn().
				Err(s.err).
				Str("viewer_id", string(viewerID)).
				Str("target_id", string(candidates[i])).
				Msg("Dropping candidate after compute failure")
			continue
		}
		summaries = append(summaries, models.MatchSummary{
			TargetID:    candidates[i],
			MatchResult: *s.result,
		})
	}
	metrics.RecordBatch(len(candidates), len(candidates)-len(summaries))
	return summaries, nil
}
