package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	clock  clock.Clock
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, clk clock.Clock, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		clock:  clk,
		log:    log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseID("user_id", userID)
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	normalizePage(req)

	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, err
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	data := lo.Map(users, func(u *entity.User, _ int) response.UserResponse {
		return response.UserToResponse(u)
	})

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// resolveAgency checks that an optional agency exists.
func (us *userService) resolveAgency(ctx context.Context, raw *string) (*uuid.UUID, error) {
	agencyID, err := parseOptionalID("agency_id", raw)
	if err != nil || agencyID == nil {
		return nil, err
	}
	agency, err := us.repo.Agency.FindByID(ctx, *agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrAgencyNotFound
	}
	return agencyID, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := us.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	agencyID, err := us.resolveAgency(ctx, req.AgencyID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password, us.config.Session.BcryptCost)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := us.clock.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FullName:     req.FullName,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRole(req.Role),
		AgencyID:     agencyID,
		IsActive:     true,
	}
	if err := us.repo.User.Create(ctx, user); err != nil {
		us.log.Warn("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, translateStoreErr(err, ErrEmailTaken)
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("user_id", userID)
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	agencyID, err := us.resolveAgency(ctx, req.AgencyID)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Role = entity.UserRole(req.Role)
	user.AgencyID = agencyID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = us.clock.Now()

	if err := us.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// a deactivated user loses every open session
	if !user.IsActive {
		if err := us.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
			us.log.Warn("Failed to revoke sessions", zap.String("user_id", userID), zap.Error(err))
		}
	}

	us.log.Info("User updated", zap.String("user_id", userID), zap.Bool("active", user.IsActive))
	resp := response.UserToResponse(user)
	return &resp, nil
}
