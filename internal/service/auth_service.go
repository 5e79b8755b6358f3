package service

import (
	"context"
	"errors"
	"time"

	"ticketera/config"
	"ticketera/internal/model"
	"ticketera/internal/repository"
	apperrors "ticketera/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
	// Authenticate validates a bearer token and resolves its subject. Token
	// validation is stateless; only the subject lookup touches the store.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	UpdateWallet(ctx context.Context, wallet string, actor *model.User) (*model.User, error)
	PromoteToOrganizer(ctx context.Context, email string, actor *model.User) (*model.User, error)
}

type AuthServiceImpl struct {
	repo     repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, cfg *config.AuthConfig) AuthService {
	return &AuthServiceImpl{
		repo:     repo,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:         req.Email,
		PasswordHash:  string(hash),
		WalletAddress: req.WalletAddress,
		Role:          model.RoleBuyer,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, email string, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthenticated
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthServiceImpl) UpdateWallet(ctx context.Context, wallet string, actor *model.User) (*model.User, error) {
	return s.repo.UpdateWallet(ctx, actor.ID, wallet)
}

func (s *AuthServiceImpl) PromoteToOrganizer(ctx context.Context, email string, actor *model.User) (*model.User, error) {
	if actor.Role != model.RoleOrganizer {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleOrganizer {
		return user, nil
	}

	return s.repo.UpdateRole(ctx, user.ID, model.RoleOrganizer)
}
