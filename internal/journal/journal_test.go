package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySourceSnapshot(t *testing.T) {
	records := []Record{
		{Key: "u1", Value: []byte(`{"session_id":"s1"}`)},
		{Key: "u2", Value: []byte(`{"session_id":"s2"}`)},
	}
	source := &MemorySource{Records: records}

	snapshot, err := source.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, records, snapshot)
}

func TestUnframe(t *testing.T) {
	payload := []byte(`{"session_id":"s1"}`)

	framed := make([]byte, 5+len(payload))
	framed[0] = 0x00
	framed[4] = 42
	copy(framed[5:], payload)

	require.Equal(t, payload, unframe(framed))
	require.Equal(t, payload, unframe(payload), "unframed payloads pass through")
	require.Equal(t, []byte{0x00, 0x01}, unframe([]byte{0x00, 0x01}), "short payloads pass through")
}

func TestKafkaSourceRequiresBrokers(t *testing.T) {
	source := NewKafkaSource(nil, "session_events")
	_, err := source.Snapshot(context.Background())
	require.Error(t, err)
}
