package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

// documents stores one aggregate type as JSONB rows of (id, data, created_at).
// seq is a serial column that breaks created_at ties in insertion order.
type documents[T any] struct {
	pool  *pgxpool.Pool
	table string
}

func (d documents[T]) save(ctx context.Context, id string, createdAt time.Time, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", d.table, id, err)
	}
	q, _ := conn(ctx, d.pool)
	_, err = q.Exec(ctx, `
		INSERT INTO `+d.table+` (id, data, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`, id, data, createdAt)
	if err != nil {
		return fmt.Errorf("save %s %s: %w", d.table, id, err)
	}
	return nil
}

// get locks the row when called inside a transaction so read-modify-write
// sequences on the same document serialize.
func (d documents[T]) get(ctx context.Context, id string) (T, error) {
	q, inTx := conn(ctx, d.pool)
	sql := `SELECT data FROM ` + d.table + ` WHERE id = $1`
	if inTx {
		sql += ` FOR UPDATE`
	}
	var (
		data []byte
		doc  T
	)
	if err := q.QueryRow(ctx, sql, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return doc, repository.ErrNotFound
		}
		return doc, fmt.Errorf("get %s %s: %w", d.table, id, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode %s %s: %w", d.table, id, err)
	}
	return doc, nil
}

func (d documents[T]) find(ctx context.Context, w *where) ([]T, error) {
	q, _ := conn(ctx, d.pool)
	rows, err := q.Query(ctx, `SELECT data FROM `+d.table+w.String()+` ORDER BY created_at DESC, seq DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", d.table, err)
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var (
			data []byte
			doc  T
		)
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", d.table, err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (d documents[T]) delete(ctx context.Context, id string) error {
	q, _ := conn(ctx, d.pool)
	res, err := q.Exec(ctx, `DELETE FROM `+d.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", d.table, id, err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
