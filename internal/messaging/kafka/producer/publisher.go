package producer

import (
	"context"

	"staffops/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

func publishMessage(ctx context.Context, writer *kafkago.Writer, msg kafka.OutboxMessage) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: msg.Topic,
		Key:   []byte(msg.AggregateID),
		Value: msg.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
			{Key: "aggregate", Value: []byte(msg.Aggregate)},
		},
	})
}
