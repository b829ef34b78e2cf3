// Package storage is the PostgreSQL persistence layer for accounts and
// finished-match results. Running matches are not stored here; they live in
// the snapshot files the engine/persistence package writes.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"adrenaline/domain"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Close() { r.pool.Close() }

func (r *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user := domain.User{Username: username}

	row := r.pool.QueryRow(ctx, "SELECT id, password_hash FROM users WHERE username = $1", username)

	err := row.Scan(&user.Id, &user.PasswordHash)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

func (r *PostgresRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	user := domain.User{Id: id}

	row := r.pool.QueryRow(ctx, "SELECT username, password_hash FROM users WHERE id = $1", id)

	err := row.Scan(&user.Username, &user.PasswordHash)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

func (r *PostgresRepo) CreateUser(ctx context.Context, username string, passwordHash string) (string, error) {
	row := r.pool.QueryRow(ctx, "INSERT INTO users(username, password_hash) VALUES($1, $2) RETURNING id", username, passwordHash)

	var id string
	err := row.Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", domain.ErrDuplicateUsername
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return id, nil
}

// RecordMatchResults writes one row per player of a finished match.
func (r *PostgresRepo) RecordMatchResults(ctx context.Context, results []domain.MatchResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer tx.Rollback(ctx)

	for _, res := range results {
		_, err := tx.Exec(ctx,
			"INSERT INTO match_results(match_id, username, points, winner, finished_at) VALUES($1, $2, $3, $4, $5)",
			res.MatchId, res.Username, res.Points, res.Winner, res.FinishedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	return nil
}

// Leaderboard returns the top users by recorded wins, then total points.
func (r *PostgresRepo) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT username,
		       COUNT(*) FILTER (WHERE winner) AS wins,
		       COUNT(*) AS matches,
		       COALESCE(SUM(points), 0) AS total_points
		FROM match_results
		GROUP BY username
		ORDER BY wins DESC, total_points DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	var board []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.Username, &row.Wins, &row.Matches, &row.TotalPoints); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		board = append(board, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	return board, nil
}
