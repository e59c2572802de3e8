package numbering

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kart-io/caseflow/core/errors"
)

// RedisConnectionConfig contains Redis connection configuration
type RedisConnectionConfig struct {
	Addr     string `json:"addr" yaml:"addr"`         // Redis server address
	Password string `json:"password" yaml:"password"` // Redis password
	DB       int    `json:"db" yaml:"db"`             // Redis database number
}

// DefaultRedisConnectionConfig returns default Redis connection configuration
func DefaultRedisConnectionConfig() *RedisConnectionConfig {
	return &RedisConnectionConfig{
		Addr:     "localhost:6379",
		Password: "",
		DB:       0,
	}
}

// RedisSequence issues case number sequences through Redis INCR, making
// allocation safe across processes and restarts. One key per year.
type RedisSequence struct {
	client         *redis.Client
	keyPrefix      string
	externalClient bool // Whether client is managed externally
}

// NewRedisSequence creates a sequence authority with its own connection
func NewRedisSequence(config *RedisConnectionConfig) (*RedisSequence, error) {
	if config == nil {
		config = DefaultRedisConnectionConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(errors.CodeNetworkError, errors.CategoryNetwork, "redis connection failed", err)
	}

	return &RedisSequence{
		client:    client,
		keyPrefix: "caseflow:seq",
	}, nil
}

// NewRedisSequenceWithClient creates a sequence authority on an externally
// managed client
func NewRedisSequenceWithClient(client *redis.Client) *RedisSequence {
	return &RedisSequence{
		client:         client,
		keyPrefix:      "caseflow:seq",
		externalClient: true,
	}
}

// Seed positions a year's counter at the highest already-issued sequence,
// only if the key does not exist yet. Safe to call from multiple writers.
func (s *RedisSequence) Seed(ctx context.Context, year int, existing []string) error {
	maxSeq := 0
	for _, number := range existing {
		parsed, ok := Parse(number)
		if !ok || parsed.Year != year {
			continue
		}
		if parsed.Sequence > maxSeq {
			maxSeq = parsed.Sequence
		}
	}

	if err := s.client.SetNX(ctx, s.key(year), maxSeq, 0).Err(); err != nil {
		return errors.Wrap(errors.CodeSequenceFailed, errors.CategoryNumbering, "seeding sequence failed", err)
	}
	return nil
}

// Next returns the next sequence value for the year
func (s *RedisSequence) Next(ctx context.Context, year int) (int, error) {
	seq, err := s.client.Incr(ctx, s.key(year)).Result()
	if err != nil {
		return 0, errors.Wrap(errors.CodeSequenceFailed, errors.CategoryNumbering, "incrementing sequence failed", err)
	}
	return int(seq), nil
}

// Close releases the connection if it is owned by this sequence
func (s *RedisSequence) Close() error {
	if s.externalClient {
		return nil
	}
	return s.client.Close()
}

func (s *RedisSequence) key(year int) string {
	return fmt.Sprintf("%s:%d", s.keyPrefix, year)
}
