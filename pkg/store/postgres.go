package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"handhistory-server/pkg/db"
	"handhistory-server/pkg/hand"
)

const handColumns = `
hands.id,
hands.created_at,
hands.stack_settings,
hands.player_roles,
hands.hole_cards,
hands.action_sequence,
hands.winnings`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if a hand with the same id is already stored
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Postgres stores hands in the `hands` table
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a store backed by db
func NewPostgres(dbh *sql.DB) *Postgres {
	return &Postgres{db: dbh}
}

func handByRow(row db.Scanner) (*hand.Record, error) {
	var r hand.Record
	var stacks, roles, holeCards, winnings []byte
	if err := row.Scan(&r.ID, &r.CreatedAt, &stacks, &roles, &holeCards, &r.ActionSequence, &winnings); err != nil {
		return nil, err
	}

	for _, col := range []struct {
		b   []byte
		dst interface{}
	}{
		{stacks, &r.StackSettings},
		{roles, &r.PlayerRoles},
		{holeCards, &r.HoleCards},
		{winnings, &r.Winnings},
	} {
		if err := json.Unmarshal(col.b, col.dst); err != nil {
			return nil, err
		}
	}

	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func jsonArgs(vals ...interface{}) ([]interface{}, error) {
	args := make([]interface{}, len(vals))
	for i, v := range vals {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		args[i] = string(b)
	}

	return args, nil
}

// CreateHand implements Store
func (p *Postgres) CreateHand(ctx context.Context, r *hand.Record) (*hand.Record, error) {
	args, err := jsonArgs(r.StackSettings, r.PlayerRoles, r.HoleCards, r.Winnings)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO hands (id, created_at, stack_settings, player_roles, hole_cards, action_sequence, winnings)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + handColumns

	row := p.db.QueryRowContext(ctx, query, r.ID, r.CreatedAt, args[0], args[1], args[2], r.ActionSequence, args[3])
	rec, err := handByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return rec, nil
}

// GetAllHands implements Store
func (p *Postgres) GetAllHands(ctx context.Context) ([]*hand.Record, error) {
	const query = `
SELECT ` + handColumns + `
FROM hands
ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*hand.Record, 0)
	for rows.Next() {
		r, err := handByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

// GetHandByID implements Store
func (p *Postgres) GetHandByID(ctx context.Context, id uuid.UUID) (*hand.Record, error) {
	const query = `
SELECT ` + handColumns + `
FROM hands
WHERE id = $1`

	r, err := handByRow(p.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return r, err
}

// SetWinnings implements Store
func (p *Postgres) SetWinnings(ctx context.Context, id uuid.UUID, winnings map[string]int) (*hand.Record, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const query = `
SELECT ` + handColumns + `
FROM hands
WHERE id = $1
FOR UPDATE`

	r, err := handByRow(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		rollback(tx)
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}

		return nil, err
	}

	if err := r.SetWinnings(winnings); err != nil {
		rollback(tx)
		return nil, err
	}

	args, err := jsonArgs(r.Winnings)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
UPDATE hands
SET winnings = $1
WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query2, args[0], id); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
