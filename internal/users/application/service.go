package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/apperror"
	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/users/domain"
	"github.com/philly/postboard/internal/users/ports"
)

var (
	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeUserAlreadyExists,
		"user already exists",
		http.StatusConflict,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeUserNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrInvalidUser = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid user data",
		http.StatusBadRequest,
	)

	ErrStorage = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeStorageFailure,
		"server error",
		http.StatusInternalServerError,
	)
)

// CreateUserParams contains all parameters needed to create a new user
type CreateUserParams struct {
	ExternalID  string
	Email       string
	Username    string
	DisplayName string
}

type UserService struct {
	repo   ports.UserRepository
	logger logger.Logger
}

func NewUserService(repo ports.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// CreateUser registers the profile for an identity-provider subject.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	user, err := domain.NewUser(params.ExternalID, params.Email, params.Username)
	if err != nil {
		return nil, ErrInvalidUser.WithDetails(err.Error())
	}
	user.SetDisplayName(params.DisplayName)

	// One profile per subject
	if _, err := s.repo.FindByExternalID(ctx, params.ExternalID); err == nil {
		return nil, ErrUserAlreadyExists.WithDetails("profile already registered")
	} else if !errors.Is(err, ports.ErrUserNotFound) {
		return nil, s.storageError(ctx, "failed to look up user", err)
	}

	exists, err := s.repo.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return nil, s.storageError(ctx, "failed to check username availability", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists.WithDetails("username already taken")
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, ports.ErrDuplicateUser) {
			return nil, ErrUserAlreadyExists
		}
		return nil, s.storageError(ctx, "failed to save user", err)
	}

	s.logger.Info(ctx, "user registered", "userID", user.ID, "username", user.Username)
	return user, nil
}

func (s *UserService) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storageError(ctx, "failed to find user", err)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storageError(ctx, "failed to find user", err)
	}
	return user, nil
}

func (s *UserService) storageError(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return ErrStorage.WithCause(err)
}
