package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserExists = errors.New("user already exists")

type UserRepo interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateSession(ctx context.Context, s *domain.Session) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(p *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: p}
}

func (p *UserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO shipping.users (id, email, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Email, u.PasswordHash)
	if isUniqueViolation(err) {
		return ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("create user %s: %w", u.Email, err)
	}
	return nil
}

func (p *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, password_hash FROM shipping.users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}
	return &u, nil
}

func (p *UserRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO shipping.sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		s.Token, s.UserID, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (p *UserRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := p.pool.QueryRow(ctx,
		`SELECT s.token, s.user_id, u.email, s.expires_at
		   FROM shipping.sessions s
		   JOIN shipping.users u ON u.id = s.user_id
		  WHERE s.token = $1`, token,
	).Scan(&s.Token, &s.UserID, &s.Email, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}
