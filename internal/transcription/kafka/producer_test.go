package kafka

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_Validation(t *testing.T) {
	_, err := NewProducer(ProducerConfig{Topic: "transcription-events"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brokers")

	_, err = NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic")
}

func TestProducer_PublishAfterClose(t *testing.T) {
	p, err := NewProducer(ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "transcription-events",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	err = p.Publish(context.Background(), "t1", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestProducer_DoubleClose(t *testing.T) {
	p, err := NewProducer(ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "transcription-events",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.Error(t, p.Close())
}
