package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jungmin-dev/coffee-order-backend/internal/apperr"
	"github.com/jungmin-dev/coffee-order-backend/internal/auth"
	"github.com/jungmin-dev/coffee-order-backend/internal/metrics"
	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, tm: tm}
}

type PointChargeResponse struct {
	UserID       string `json:"user_id"`
	CurrentPoint int64  `json:"current_point"`
}

func (s *UserService) Create(ctx context.Context, userID, userName, password string, initialPoint int64) (models.User, error) {
	u := models.User{UserID: userID, UserName: userName, Point: initialPoint}
	if err := u.Validate(); err != nil {
		return models.User{}, apperr.New(apperr.CodeInvalidInput, err.Error())
	}
	if password == "" {
		return models.User{}, apperr.New(apperr.CodeInvalidInput, "password required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.CodeInternal, "user creation failed", err)
	}
	u.PasswordHash = hash

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.User{}, apperr.New(apperr.CodeDuplicateUser, "user already exists")
		}
		return models.User{}, apperr.Wrap(apperr.CodeInternal, "user creation failed", err)
	}
	slog.Info("user created", "user_id", created.UserID)
	return created, nil
}

func (s *UserService) Login(ctx context.Context, userID, password string) (string, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		// Same response for unknown user and wrong password.
		return "", apperr.New(apperr.CodeUnauthorized, "invalid credentials")
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid credentials")
	}
	token, err := s.tm.Generate(u.UserID)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "token generation failed", err)
	}
	return token, nil
}

// ChargePoint credits the balance. The write is an unconditional atomic
// increment, so N concurrent charges land as exactly N increments.
func (s *UserService) ChargePoint(ctx context.Context, userID string, amount int64) (PointChargeResponse, error) {
	if amount <= 0 {
		return PointChargeResponse{}, apperr.New(apperr.CodeInvalidInput, "charge amount must be greater than zero")
	}
	u, err := s.users.AddPoint(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PointChargeResponse{}, apperr.New(apperr.CodeUserNotFound, "user not found")
		}
		return PointChargeResponse{}, apperr.Wrap(apperr.CodeInternal, "charge failed", err)
	}
	metrics.PointChargesTotal.Inc()
	slog.Info("point charged", "user_id", userID, "amount", amount, "point", u.Point)
	return PointChargeResponse{UserID: u.UserID, CurrentPoint: u.Point}, nil
}

func (s *UserService) GetBalance(ctx context.Context, userID string) (PointChargeResponse, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PointChargeResponse{}, apperr.New(apperr.CodeUserNotFound, "user not found")
		}
		return PointChargeResponse{}, apperr.Wrap(apperr.CodeInternal, "balance lookup failed", err)
	}
	return PointChargeResponse{UserID: u.UserID, CurrentPoint: u.Point}, nil
}
