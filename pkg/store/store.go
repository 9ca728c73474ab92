package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"handhistory-server/internal/config"
	"handhistory-server/pkg/db"
	"handhistory-server/pkg/hand"
)

// ErrNotFound is returned when no hand has the requested id
var ErrNotFound = errors.New("hand not found")

// Store persists hand histories
type Store interface {
	// CreateHand stores the record and returns it as stored
	CreateHand(ctx context.Context, r *hand.Record) (*hand.Record, error)

	// GetAllHands returns every hand, newest first
	GetAllHands(ctx context.Context) ([]*hand.Record, error)

	GetHandByID(ctx context.Context, id uuid.UUID) (*hand.Record, error)

	// SetWinnings replaces the winnings of a stored hand
	SetWinnings(ctx context.Context, id uuid.UUID, winnings map[string]int) (*hand.Record, error)
}

// New returns the store selected by cfg.Driver
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgres(db.Instance()), nil
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		return NewRedis(rdb), nil
	case config.DriverMemory:
		return NewMemory(), nil
	}

	return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
}
