package kafkaconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKafkaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvKafkaProducerMaxAttempts, EnvKafkaProducerBatchTimeout, EnvKafkaProducerRequireAcks,
		EnvKafkaProducerCompression, EnvKafkaConsumerStartOffset, EnvKafkaConsumerMinBytes,
		EnvKafkaConsumerMaxBytes, EnvKafkaConsumerMaxWait, EnvKafkaConsumerCommitInterval,
		EnvKafkaConsumerSessionTimeout, EnvKafkaConsumerMaxRetries, EnvKafkaConsumerRetryBackoff,
		EnvKafkaConsumerGroupID,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearKafkaEnv(t)

	cfg, err := Load([]string{" broker-1:9092 ", "", "broker-2:9092"})
	require.NoError(t, err)

	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Brokers)
	assert.Equal(t, DefaultProducerMaxAttempts, cfg.ProducerMaxAttempts)
	assert.Equal(t, "snappy", cfg.ProducerCompression)
	assert.Equal(t, int64(-2), cfg.ConsumerStartOffset)
	assert.Equal(t, DefaultConsumerGroupID, cfg.ConsumerGroupID)
	assert.Equal(t, 500*time.Millisecond, cfg.ConsumerRetryBackoff)
}

func TestLoad_Overrides(t *testing.T) {
	clearKafkaEnv(t)
	t.Setenv(EnvKafkaProducerCompression, "ZSTD")
	t.Setenv(EnvKafkaConsumerMaxRetries, "5")
	t.Setenv(EnvKafkaConsumerGroupID, "mailer")

	cfg, err := Load([]string{"localhost:9092"})
	require.NoError(t, err)

	assert.Equal(t, "zstd", cfg.ProducerCompression)
	assert.Equal(t, 5, cfg.ConsumerMaxRetries)
	assert.Equal(t, "mailer", cfg.ConsumerGroupID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		env     map[string]string
		wantErr string
	}{
		{name: "no brokers", brokers: nil, wantErr: "at least one Kafka broker"},
		{name: "blank brokers", brokers: []string{" ", ""}, wantErr: "at least one Kafka broker"},
		{name: "bad compression", brokers: []string{"b:9092"}, env: map[string]string{EnvKafkaProducerCompression: "brotli"}, wantErr: "ProducerCompression"},
		{name: "bad acks", brokers: []string{"b:9092"}, env: map[string]string{EnvKafkaProducerRequireAcks: "2"}, wantErr: "ProducerRequireAcks"},
		{name: "bad offset", brokers: []string{"b:9092"}, env: map[string]string{EnvKafkaConsumerStartOffset: "7"}, wantErr: "ConsumerStartOffset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKafkaEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tt.brokers)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
