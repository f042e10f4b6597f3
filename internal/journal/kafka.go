package journal

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSource drains a session-events topic into journal records. Unlike the
// streaming consumers elsewhere in the platform it reads a bounded snapshot:
// every partition from its first offset up to the last offset observed at
// dial time.
type KafkaSource struct {
	brokers     []string
	topic       string
	dialTimeout time.Duration
	logger      *log.Logger
}

// KafkaOption configures optional behaviour for the KafkaSource.
type KafkaOption func(*KafkaSource)

// WithKafkaLogger overrides the logger used to report per-partition progress.
func WithKafkaLogger(logger *log.Logger) KafkaOption {
	return func(s *KafkaSource) {
		s.logger = logger
	}
}

// NewKafkaSource constructs a source reading the given topic.
func NewKafkaSource(brokers []string, topic string, opts ...KafkaOption) *KafkaSource {
	s := &KafkaSource{
		brokers:     brokers,
		topic:       topic,
		dialTimeout: 10 * time.Second,
		logger:      log.New(log.Writer(), "[journal] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot reads every record currently in the topic, partition by partition.
func (s *KafkaSource) Snapshot(ctx context.Context) ([]Record, error) {
	if len(s.brokers) == 0 {
		return nil, fmt.Errorf("kafka journal: no brokers configured")
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.dialTimeout)
	defer cancel()

	conn, err := kafka.DialContext(dialCtx, "tcp", s.brokers[0])
	if err != nil {
		return nil, fmt.Errorf("kafka journal: dial %s: %w", s.brokers[0], err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(s.topic)
	if err != nil {
		return nil, fmt.Errorf("kafka journal: read partitions for %s: %w", s.topic, err)
	}

	records := make([]Record, 0)
	for _, partition := range partitions {
		partitionRecords, err := s.drainPartition(ctx, partition)
		if err != nil {
			return nil, err
		}
		records = append(records, partitionRecords...)
	}

	s.logger.Printf("snapshot complete (topic=%s partitions=%d records=%d)", s.topic, len(partitions), len(records))
	return records, nil
}

func (s *KafkaSource) drainPartition(ctx context.Context, partition kafka.Partition) ([]Record, error) {
	leader := net.JoinHostPort(partition.Leader.Host, strconv.Itoa(partition.Leader.Port))

	dialCtx, cancel := context.WithTimeout(ctx, s.dialTimeout)
	defer cancel()

	conn, err := kafka.DialLeader(dialCtx, "tcp", leader, s.topic, partition.ID)
	if err != nil {
		return nil, fmt.Errorf("kafka journal: dial leader %s for partition %d: %w", leader, partition.ID, err)
	}
	defer conn.Close()

	first, err := conn.ReadFirstOffset()
	if err != nil {
		return nil, fmt.Errorf("kafka journal: first offset of partition %d: %w", partition.ID, err)
	}
	last, err := conn.ReadLastOffset()
	if err != nil {
		return nil, fmt.Errorf("kafka journal: last offset of partition %d: %w", partition.ID, err)
	}
	if first >= last {
		return nil, nil
	}

	if _, err := conn.Seek(first, kafka.SeekAbsolute); err != nil {
		return nil, fmt.Errorf("kafka journal: seek partition %d: %w", partition.ID, err)
	}

	records := make([]Record, 0, last-first)
	offset := first
	for offset < last {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := conn.SetReadDeadline(time.Now().Add(s.dialTimeout)); err != nil {
			return nil, fmt.Errorf("kafka journal: set deadline on partition %d: %w", partition.ID, err)
		}

		batch := conn.ReadBatch(1, 10e6)
		for offset < last {
			msg, err := batch.ReadMessage()
			if err != nil {
				break
			}
			offset = msg.Offset + 1
			records = append(records, Record{
				Key:   string(msg.Key),
				Value: unframe(msg.Value),
			})
		}
		if err := batch.Close(); err != nil && offset < last {
			return nil, fmt.Errorf("kafka journal: read partition %d at offset %d: %w", partition.ID, offset, err)
		}
	}

	return records, nil
}

// unframe strips the Confluent Schema Registry wire format (magic byte plus
// 4-byte schema id) when present.
func unframe(value []byte) []byte {
	if len(value) >= 5 && value[0] == 0x00 {
		return value[5:]
	}
	return value
}
