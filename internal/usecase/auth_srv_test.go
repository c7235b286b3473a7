package usecase

import (
	"context"
	"testing"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (*MockUserRepository, *MockSessionRepository, AuthService) {
	t.Helper()

	userRepo := &MockUserRepository{}
	sessionRepo := &MockSessionRepository{}
	repo := &repository.Repository{
		User:    userRepo,
		Session: sessionRepo,
	}

	return userRepo, sessionRepo, NewAuthService(repo, testConfig(), zap.NewNop())
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo, sessionRepo, service := newAuthService(t)

	ctx := context.Background()
	req := &request.RegisterRequest{
		FullName: "Jane Tan",
		Email:    "jane@example.com",
		Password: "secret123",
	}

	userRepo.On("FindByEmail", ctx, "jane@example.com").Return(nil, nil).Once()
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil).Once()
	sessionRepo.On("Create", ctx, mock.AnythingOfType("*entity.Session")).Return(nil).Once()

	resp, err := service.Register(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, entity.RoleCustomer, resp.Role)
	assert.NotEmpty(t, resp.Token)

	userRepo.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo, _, service := newAuthService(t)

	ctx := context.Background()
	req := &request.RegisterRequest{
		FullName: "Jane Tan",
		Email:    "jane@example.com",
		Password: "secret123",
	}

	userRepo.On("FindByEmail", ctx, "jane@example.com").Return(&entity.User{
		Base:  entity.Base{ID: uuid.New()},
		Email: "jane@example.com",
	}, nil).Once()

	resp, err := service.Register(ctx, req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrConflict)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo, sessionRepo, service := newAuthService(t)

	ctx := context.Background()
	hash, err := utils.HashPassword("secret123")
	assert.NoError(t, err)

	userRepo.On("FindByEmail", ctx, "jane@example.com").Return(&entity.User{
		Base:         entity.Base{ID: uuid.New()},
		FullName:     "Jane Tan",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}, nil).Once()
	sessionRepo.On("Create", ctx, mock.AnythingOfType("*entity.Session")).Return(nil).Once()

	resp, err := service.Login(ctx, &request.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo, sessionRepo, service := newAuthService(t)

	ctx := context.Background()
	hash, err := utils.HashPassword("secret123")
	assert.NoError(t, err)

	userRepo.On("FindByEmail", ctx, "jane@example.com").Return(&entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Email:        "jane@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}, nil).Once()

	resp, err := service.Login(ctx, &request.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUnauthorized)

	sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo, _, service := newAuthService(t)

	ctx := context.Background()
	userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

	resp, err := service.Login(ctx, &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
