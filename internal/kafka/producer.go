package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blastsms/internal/observability"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const producerName = "blastsms"

// Producer handles producing messages to Kafka topics. The topic is chosen
// per message so one writer serves every event stream.
type Producer struct {
	writer *kafka.Writer
	logger *observability.Logger
}

// ProducerConfig holds configuration for the Kafka producer
type ProducerConfig struct {
	Brokers []string
	// Compression can be: none, gzip, snappy, lz4, zstd
	Compression string
	// BatchTimeout is the max time to wait before sending a batch
	BatchTimeout time.Duration
	// RequiredAcks: -1 all replicas, 0 none, 1 leader only
	RequiredAcks int
}

// NewProducer creates a new Kafka producer
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	compression := kafka.Compression(0)
	switch config.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "snappy":
		compression = kafka.Snappy
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	}

	batchTimeout := config.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = 10 * time.Millisecond
	}

	requiredAcks := config.RequiredAcks
	if requiredAcks == 0 {
		requiredAcks = -1
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Balancer:               &kafka.Hash{},
		Compression:            compression,
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequiredAcks(requiredAcks),
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// Message represents a Kafka message
type Message struct {
	Topic     string
	Key       string            // Used for partitioning
	Value     interface{}       // Will be JSON encoded
	Headers   map[string]string // Message headers
	Timestamp time.Time
}

// ProduceMessage sends one message to its topic
func (p *Producer) ProduceMessage(ctx context.Context, msg Message) error {
	kafkaMsg, err := buildMessage(msg)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal message value", err)
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafkaMsg); err != nil {
		p.logger.Error(ctx, fmt.Sprintf("failed to write message to topic %s", msg.Topic), err)
		return fmt.Errorf("failed to write message to topic %s: %w", msg.Topic, err)
	}

	p.logger.Debug(ctx, fmt.Sprintf("produced message to topic %s with key %s", msg.Topic, msg.Key))
	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

func buildMessage(msg Message) (kafka.Message, error) {
	valueBytes, err := json.Marshal(msg.Value)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal message value: %w", err)
	}

	headers := make([]kafka.Header, 0, len(msg.Headers)+3)
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	headers = append(headers,
		kafka.Header{Key: "message_id", Value: []byte(uuid.New().String())},
		kafka.Header{Key: "produced_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		kafka.Header{Key: "producer", Value: []byte(producerName)},
	)

	kafkaMsg := kafka.Message{
		Topic:   msg.Topic,
		Key:     []byte(msg.Key),
		Value:   valueBytes,
		Headers: headers,
		Time:    msg.Timestamp,
	}
	if kafkaMsg.Time.IsZero() {
		kafkaMsg.Time = time.Now()
	}
	return kafkaMsg, nil
}
