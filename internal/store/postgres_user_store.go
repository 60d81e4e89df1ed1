package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/BicEv/MovieRatings/internal/domain"
)

// PostgresUserStore implements UserStore for PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, user_name, password_hash, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("userID", user.ID), slog.String("email", user.Email))
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.UserName, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "User already exists (unique constraint violation in DB)",
				slog.String("email", user.Email),
				slog.String("constraint", pqErr.Constraint))
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "User created successfully in DB", slog.String("userID", user.ID))
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT id, email, user_name, password_hash, role, created_at, updated_at
              FROM users WHERE id = $1`
	var user domain.User
	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, user_name, password_hash, role, created_at, updated_at
              FROM users WHERE lower(email) = lower($1)`
	var user domain.User
	err := s.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by email from DB", slog.String("email", email), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT id, email, user_name, password_hash, role, created_at, updated_at
              FROM users WHERE lower(user_name) = lower($1)`
	var user domain.User
	err := s.db.GetContext(ctx, &user, query, userName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by username from DB", slog.String("userName", userName), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, user_name = $2, password_hash = $3, role = $4, updated_at = $5
              WHERE id = $6`
	user.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update user query", slog.String("userID", user.ID))
	result, err := s.db.ExecContext(ctx, query, user.Email, user.UserName, user.PasswordHash, user.Role, user.UpdatedAt, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Update failed: email or username already exists (DB constraint)",
				slog.String("userID", user.ID), slog.String("constraint", pqErr.Constraint))
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.String("userID", user.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete user query", slog.String("userID", userID))
	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete user from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	s.logger.InfoContext(ctx, "User deleted successfully from DB", slog.String("userID", userID))
	return nil
}
