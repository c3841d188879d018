package kafka

import (
	"encoding/json"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	want := BookingEvent{
		Type:       "booking_paid",
		BookingID:  "b-1",
		UserID:     "u-1",
		ScheduleID: 7,
		TotalPrice: 700000,
		Status:     "paid",
		At:         time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC),
	}
	value, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := decodeEvent(kafkaGo.Message{Key: []byte("b-1"), Value: value})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := decodeEvent(kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
