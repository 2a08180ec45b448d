package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

var _ Publisher = (*Kafka)(nil)

// Kafka publishes events keyed by root id so changes of one aggregate stay in
// order within a partition.
type Kafka struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
}

func NewKafka(brokers, topic string) (*Kafka, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  brokers,
		"client.id":          "ptv-catalog",
		"acks":               "all",
		"enable.idempotence": true,
	})
	if err != nil {
		return nil, err
	}

	return &Kafka{producer: producer, topic: topic, timeout: 10 * time.Second}, nil
}

func (k *Kafka) Publish(ctx context.Context, events ...*EntityChanged) error {
	delivery := make(chan kafka.Event, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return err
		}

		err = k.producer.Produce(&kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
			Key:            []byte(event.RootID),
			Value:          value,
			Headers: []kafka.Header{
				{Key: "kind", Value: []byte(event.Kind)},
				{Key: "operation", Value: []byte(event.Operation)},
			},
		}, delivery)
		if err != nil {
			return err
		}
	}

	timer := time.NewTimer(k.timeout)
	defer timer.Stop()
	for range events {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("kafka delivery timed out after %s", k.timeout)
		case e := <-delivery:
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				logrus.Errorf("kafka delivery failed: %v", m.TopicPartition.Error)
				return m.TopicPartition.Error
			}
		}
	}

	return nil
}

func (k *Kafka) Close() error {
	k.producer.Flush(int(k.timeout / time.Millisecond))
	k.producer.Close()
	return nil
}
