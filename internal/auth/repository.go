package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists user accounts and the active refresh-token set. The
// set is the single source of truth for which refresh tokens are still
// valid; it is consulted on every refresh and logout.
type Repository interface {
	CreateUser(ctx context.Context, user User) error
	FindUserByUsername(ctx context.Context, username string) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
	AddRefreshToken(ctx context.Context, userID, token string) error
	HasRefreshToken(ctx context.Context, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// DBOps defines the subset of pgxpool.Pool methods we use.
// This allows us to inject a mock for testing.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBOps
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (id, username, password, fullname)
        VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.Password, user.Fullname,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) FindUserByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password, fullname, created_at
        FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password, fullname, created_at
        FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) AddRefreshToken(ctx context.Context, userID, token string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO authentications (token, user_id)
        VALUES ($1, $2)`, token, userID)
	return err
}

func (r *PostgresRepository) HasRefreshToken(ctx context.Context, token string) (bool, error) {
	var found string
	err := r.db.QueryRow(ctx, `SELECT token FROM authentications WHERE token = $1`, token).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authentications WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRefreshTokenNotRegistered
	}
	return nil
}

// scanUser maps a users row onto the API model. Column order matches the
// SELECT lists above: id, username, password, fullname, created_at.
func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Fullname, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}
