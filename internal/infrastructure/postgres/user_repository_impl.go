package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, name, email, password_hash, role, profile_photo, contact_number,
	enrolled_courses, completed_courses, projects, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.ProfilePhoto, &u.ContactNumber,
		&u.EnrolledCourses, &u.CompletedCourses, &u.Projects, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Normalize()
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.Normalize()
	q, _ := conn(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, u.ID, u.Name, u.Email, u.Password, u.Role, u.ProfilePhoto, u.ContactNumber,
		u.EnrolledCourses, u.CompletedCourses, u.Projects, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	q, inTx := conn(ctx, r.pool)
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if inTx {
		sql += ` FOR UPDATE`
	}
	return scanUser(q.QueryRow(ctx, sql, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	q, _ := conn(ctx, r.pool)
	return scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.Normalize()
	q, _ := conn(ctx, r.pool)
	res, err := q.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, profile_photo = $5, contact_number = $6,
			enrolled_courses = $7, completed_courses = $8, projects = $9, updated_at = $10
		WHERE id = $11
	`, u.Name, u.Email, u.Password, u.Role, u.ProfilePhoto, u.ContactNumber,
		u.EnrolledCourses, u.CompletedCourses, u.Projects, u.UpdatedAt, u.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	q, _ := conn(ctx, r.pool)
	res, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	q, _ := conn(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	out := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Summaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := make(map[string]entity.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, _ := conn(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT id, name, email FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("user summaries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
