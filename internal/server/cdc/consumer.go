// Package cdc consumes the change-data-capture stream and mirrors every
// message into the audit log. The ingestor holds no state of its own;
// delivery is at-least-once and duplicates after a crash are acceptable.
package cdc

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/DorLamesh/devops-web-app/internal/logging"
	"github.com/DorLamesh/devops-web-app/internal/server/audit"
)

// payloadField is the stream entry field carrying the change payload.
const payloadField = "payload"

type Consumer struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	sink     audit.Sink
	logger   logging.Logger

	block      time.Duration
	retryDelay time.Duration
}

// NewConsumer builds a stream consumer bound to the given stream and
// consumer group. The consumer name is derived from the hostname so each
// process instance claims its own pending entries.
func NewConsumer(client *redis.Client, stream, group string, sink audit.Sink, logger logging.Logger) *Consumer {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "cdc-consumer"
	}
	return &Consumer{
		client:     client,
		stream:     stream,
		group:      group,
		consumer:   name,
		sink:       sink,
		logger:     logger.With("module", "cdc_consumer"),
		block:      5 * time.Second,
		retryDelay: time.Second,
	}
}

// Run consumes the stream until ctx is cancelled. The consumer group is
// created at the earliest retained offset on first start; on restart the
// group resumes from its committed position. A malformed message degrades to
// raw-text logging and never stops the loop.
func (c *Consumer) Run(ctx context.Context) error {

	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return err
	}

	c.logger.Info(ctx, "Starting CDC consumer", "stream", c.stream, "group", c.group)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info(ctx, "Stopping CDC consumer...")
			return nil
		default:
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    64,
			Block:    c.block,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				c.logger.Info(ctx, "Stopping CDC consumer...")
				return nil
			}
			c.logger.Error(ctx, "stream read error", "error", err.Error())
			time.Sleep(c.retryDelay)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.handle(msg)
				if err := c.client.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
					c.logger.Warn(ctx, "ack error", "id", msg.ID, "error", err.Error())
				}
			}
		}
	}
}

// handle mirrors one stream entry into the audit sink. A payload that does
// not parse as JSON is emitted as raw text under a separate field; the event
// is never dropped.
func (c *Consumer) handle(msg redis.XMessage) {
	value := payloadText(msg)

	var data map[string]any
	if err := json.Unmarshal([]byte(value), &data); err == nil {
		c.sink.Emit(&audit.Event{Action: audit.ActionDBChange, Data: data})
		return
	}

	c.sink.Emit(&audit.Event{Action: audit.ActionDBChange, Raw: value})
}

// payloadText extracts the message payload: the "payload" field when present,
// otherwise the sole field value of the entry.
func payloadText(msg redis.XMessage) string {
	if v, ok := msg.Values[payloadField]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if len(msg.Values) == 1 {
		for _, v := range msg.Values {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
