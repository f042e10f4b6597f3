//go:build integration

package journal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	"example.com/trainingdata/internal/events"
)

func TestKafkaSourceSnapshotsTopic(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	kafkaC, err := kafkaContainer.RunContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaC.Terminate(context.Background()) })

	brokers, err := kafkaC.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	broker := brokers[0]

	topic := "session_events"

	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     2,
		ReplicationFactor: 1,
	}))

	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}
	defer writer.Close()

	session := events.SessionCompleted{
		SessionID: "sess-int",
		Examples: []events.ExampleRecorded{
			{
				ExerciseID: "arms/biceps-curl",
				Readings:   []events.ReadingRecorded{{X: 1, Y: 2, Z: 3, Axes: 3}},
			},
		},
	}
	payload, err := json.Marshal(session)
	require.NoError(t, err)

	messages := []kafka.Message{
		{Key: []byte("u1"), Value: payload},
		{Key: []byte("u2"), Value: []byte(`{"activity_id":"act-1"}`)},
		{Key: []byte("u3"), Value: payload},
	}
	require.NoError(t, writer.WriteMessages(ctx, messages...))

	source := NewKafkaSource([]string{broker}, topic)

	var records []Record
	require.Eventually(t, func() bool {
		records, err = source.Snapshot(ctx)
		return err == nil && len(records) == len(messages)
	}, time.Minute, time.Second)

	keys := make(map[string][]byte, len(records))
	for _, record := range records {
		keys[record.Key] = record.Value
	}
	require.Len(t, keys, 3)
	require.JSONEq(t, string(payload), string(keys["u1"]))
	require.JSONEq(t, string(payload), string(keys["u3"]))
	require.JSONEq(t, `{"activity_id":"act-1"}`, string(keys["u2"]))
}
