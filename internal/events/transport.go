// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/logging"
)

// Transport bundles a Watermill publisher with the optional embedded
// NATS server backing it, so both shut down together.
type Transport struct {
	Publisher message.Publisher
	server    *EmbeddedServer
}

// NewTransport builds the event transport per cfg. With NATS disabled
// it returns an in-process Go channel pub/sub, which keeps single-node
// deployments dependency-free. With EmbeddedServer set, an in-process
// NATS server is started and the publisher connects to it.
func NewTransport(cfg *config.NATSConfig) (*Transport, error) {
	logger := newWatermillLogger()

	if !cfg.Enabled {
		logging.Info().Msg("NATS disabled, using in-process event channel")
		return &Transport{
			Publisher: gochannel.NewGoChannel(gochannel.Config{}, logger),
		}, nil
	}

	t := &Transport{}
	url := cfg.URL
	if cfg.EmbeddedServer {
		srv, err := NewEmbeddedServer(cfg.StoreDir)
		if err != nil {
			return nil, fmt.Errorf("start embedded nats: %w", err)
		}
		t.server = srv
		url = srv.ClientURL()
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logging.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
		},
	}, logger)
	if err != nil {
		if t.server != nil {
			t.server.Shutdown()
		}
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}
	t.Publisher = pub
	return t, nil
}

// Close shuts down the publisher, then the embedded server if one is
// running.
func (t *Transport) Close() error {
	err := t.Publisher.Close()
	if t.server != nil {
		t.server.Shutdown()
	}
	return err
}
