// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package events publishes match lifecycle events over Watermill. The
// transport is either an in-process Go channel or NATS, selected by
// configuration; the matching core only sees the EventPublisher
// interface and never blocks on delivery problems.
package events

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

// topicMatchComputed is the topic suffix; the configured prefix is
// prepended at construction.
const topicMatchComputed = "match.computed"

// MatchComputedEvent is the wire payload emitted after every single
// match computation.
type MatchComputedEvent struct {
	ViewerID        models.UserID `json:"viewer_id"`
	TargetID        models.UserID `json:"target_id"`
	Score           int           `json:"score"`
	IsOnlineMatched bool          `json:"is_online_matched"`
	ComputedAt      time.Time     `json:"computed_at"`
}

// Bus publishes match events to a Watermill publisher. It satisfies the
// matching core's EventPublisher interface.
type Bus struct {
	publisher message.Publisher
	topic     string
}

// NewBus wraps the given publisher. topicPrefix namespaces topics per
// deployment, e.g. "squadmatch" yields "squadmatch.match.computed".
func NewBus(publisher message.Publisher, topicPrefix string) *Bus {
	topic := topicMatchComputed
	if topicPrefix != "" {
		topic = topicPrefix + "." + topic
	}
	return &Bus{publisher: publisher, topic: topic}
}

// Topic returns the fully qualified match-computed topic.
func (b *Bus) Topic() string {
	return b.topic
}

// MatchComputed publishes a match-computed event. Publishing is best
// effort: failures are logged and counted, never surfaced to the match
// request that triggered them.
func (b *Bus) MatchComputed(_ context.Context, viewerID, targetID models.UserID, result *models.MatchResult) {
	evt := MatchComputedEvent{
		ViewerID:        viewerID,
		TargetID:        targetID,
		Score:           result.Score,
		IsOnlineMatched: result.IsOnlineMatched,
		ComputedAt:      result.ComputedAt,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		metrics.RecordEventPublish(b.topic, err)
		logging.Error().Err(err).Msg("Failed to marshal match event")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.publisher.Publish(b.topic, msg); err != nil {
		metrics.RecordEventPublish(b.topic, err)
		logging.Error().
			Err(err).
			Str("topic", b.topic).
			Str("viewer_id", string(viewerID)).
			Str("target_id", string(targetID)).
			Msg("Failed to publish match event")
		return
	}
	metrics.RecordEventPublish(b.topic, nil)
}

// Close shuts down the underlying publisher.
func (b *Bus) Close() error {
	return b.publisher.Close()
}
