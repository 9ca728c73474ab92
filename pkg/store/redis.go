package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"handhistory-server/pkg/hand"
)

// key layout:
//
//	string: hands:record:{id} -> JSON record
//	zset  : hands:index       -> member {id}, score created_at in unix nanoseconds
const indexKey = "hands:index"

func recordKey(id string) string {
	return fmt.Sprintf("hands:record:%s", id)
}

// Redis stores hands as JSON blobs with a sorted set for listing
type Redis struct {
	rdb *redis.Client
}

// NewRedis returns a store backed by rdb
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// CreateHand implements Store
func (r *Redis) CreateHand(ctx context.Context, rec *hand.Record) (*hand.Record, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	id := rec.ID.String()
	p := r.rdb.TxPipeline()
	p.Set(ctx, recordKey(id), b, 0)
	p.ZAdd(ctx, indexKey, redis.Z{Score: float64(rec.CreatedAt.UnixNano()), Member: id})
	if _, err := p.Exec(ctx); err != nil {
		return nil, err
	}

	return decodeRecord(b)
}

// GetAllHands implements Store
func (r *Redis) GetAllHands(ctx context.Context) ([]*hand.Record, error) {
	ids, err := r.rdb.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*hand.Record, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}

	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, val := range vals {
		s, ok := val.(string)
		if !ok {
			// indexed but the record is gone
			continue
		}

		rec, err := decodeRecord([]byte(s))
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// GetHandByID implements Store
func (r *Redis) GetHandByID(ctx context.Context, id uuid.UUID) (*hand.Record, error) {
	b, err := r.rdb.Get(ctx, recordKey(id.String())).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return decodeRecord(b)
}

// SetWinnings implements Store
func (r *Redis) SetWinnings(ctx context.Context, id uuid.UUID, winnings map[string]int) (*hand.Record, error) {
	key := recordKey(id.String())

	var rec *hand.Record
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrNotFound
		}

		if err != nil {
			return err
		}

		if rec, err = decodeRecord(b); err != nil {
			return err
		}

		if err := rec.SetWinnings(winnings); err != nil {
			return err
		}

		if b, err = json.Marshal(rec); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, 0)
			return nil
		})

		return err
	}, key)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, fmt.Errorf("winnings for %s changed concurrently: %w", id, err)
		}

		return nil, err
	}

	return rec, nil
}
