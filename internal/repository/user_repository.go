package repository

import (
	"context"
	"errors"
	"time"

	"ticketera/internal/model"
	apperrors "ticketera/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation  = "23505"
	walletConstraint = "users_wallet_address_key"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateRole(ctx context.Context, id int, role model.Role) (*model.User, error)
	UpdateWallet(ctx context.Context, id int, wallet string) (*model.User, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (email, password_hash, wallet_address, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, wallet_address, role, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.WalletAddress, user.Role,
	).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.WalletAddress,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == walletConstraint {
				return nil, apperrors.ErrWalletTaken
			}
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, wallet_address, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.WalletAddress,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, wallet_address, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.WalletAddress,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateWallet(ctx context.Context, id int, wallet string) (*model.User, error) {
	query := `
		UPDATE users
		SET wallet_address = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, email, password_hash, wallet_address, role, created_at, updated_at
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, wallet, time.Now().UTC(), id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.WalletAddress,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrWalletTaken
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, id int, role model.Role) (*model.User, error) {
	query := `
		UPDATE users
		SET role = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, email, password_hash, wallet_address, role, created_at, updated_at
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, role, time.Now().UTC(), id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.WalletAddress,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
