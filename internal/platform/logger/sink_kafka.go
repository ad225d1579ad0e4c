package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink forwards ERROR records to a Kafka topic so production console
// failures land in the ops pipeline.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	mu     sync.RWMutex
	closed bool
}

// NewKafkaSink creates a sink producing to topic via the given seed brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic not configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.LeaderAck()),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(5*time.Second),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka sink: %w", err)
	}

	return &KafkaSink{client: client, topic: topic}, nil
}

// Emit produces the record asynchronously; a slow broker must not stall the
// caller that hit the error being reported.
func (s *KafkaSink) Emit(_ context.Context, rec Record) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("kafka sink is closed")
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode log record: %w", err)
	}

	s.client.Produce(context.Background(), &kgo.Record{
		Topic: s.topic,
		Key:   []byte(rec.Level),
		Value: value,
	}, nil)
	return nil
}

// Close flushes buffered records and releases the client.
func (s *KafkaSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Flush(ctx); err != nil {
		s.client.Close()
		return fmt.Errorf("flush kafka sink: %w", err)
	}
	s.client.Close()
	return nil
}
