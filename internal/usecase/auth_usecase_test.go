package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/askgate/askgate/internal/domain"
)

func newAuthUseCase() (*MockUserRepository, *MockAuditRepository, *MockTokenService, *MockPasswordService, *MockSessionStore, *AuthUseCase) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditRepository)
	tokens := new(MockTokenService)
	passwords := new(MockPasswordService)
	sessions := new(MockSessionStore)
	uc := NewAuthUseCase(userRepo, auditRepo, tokens, passwords, sessions, 24*time.Hour)
	return userRepo, auditRepo, tokens, passwords, sessions, uc
}

func TestAuthUseCase_Register(t *testing.T) {
	t.Run("creates a user with hashed password", func(t *testing.T) {
		userRepo, _, _, passwords, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
			Return(nil, domain.NewNotFound("user not found"))
		passwords.On("Hash", "s3cret-pass").Return("hashed", nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ada@example.com" && u.PasswordHash == "hashed" && u.Role == domain.RoleUser
		})).Return(nil)

		user, err := uc.Register(context.Background(), "Ada@Example.com", "Ada", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo, _, _, _, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
			Return(&domain.User{ID: "u1", Email: "ada@example.com"}, nil)

		_, err := uc.Register(context.Background(), "ada@example.com", "Ada", "s3cret-pass")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeConflict, appErr.Code)
	})

	t.Run("failing email lookup surfaces as storage error, not a free email", func(t *testing.T) {
		userRepo, _, _, passwords, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
			Return(nil, domain.NewStorageFailure("find user", assert.AnError))

		_, err := uc.Register(context.Background(), "ada@example.com", "Ada", "s3cret-pass")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeStorageFailure, appErr.Code)
		passwords.AssertNotCalled(t, "Hash")
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, _, _, _, _, uc := newAuthUseCase()
		_, err := uc.Register(context.Background(), "ada@example.com", "Ada", "short")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeValidation, appErr.Code)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "ada@example.com", PasswordHash: "hashed", Role: domain.RoleUser}

	t.Run("issues token and records login audit entry", func(t *testing.T) {
		userRepo, auditRepo, tokens, passwords, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		passwords.On("Compare", "hashed", "s3cret-pass").Return(nil)
		tokens.On("Generate", domain.Principal{ID: "u1", Role: domain.RoleUser}).Return("token-abc", nil)
		auditRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.ActionType == domain.ActionLogin && e.PerformedBy == "u1"
		})).Return(nil).Once()

		result, err := uc.Login(context.Background(), "ada@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "token-abc", result.Token)
		auditRepo.AssertExpectations(t)
	})

	t.Run("wrong password is unauthenticated, not found detail hidden", func(t *testing.T) {
		userRepo, auditRepo, _, passwords, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		passwords.On("Compare", "hashed", "wrong").Return(assert.AnError)

		_, err := uc.Login(context.Background(), "ada@example.com", "wrong")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeUnauthenticated, appErr.Code)
		auditRepo.AssertNotCalled(t, "Record")
	})

	t.Run("token signing failure is internal, not a storage failure", func(t *testing.T) {
		userRepo, auditRepo, tokens, passwords, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		passwords.On("Compare", "hashed", "s3cret-pass").Return(nil)
		tokens.On("Generate", domain.Principal{ID: "u1", Role: domain.RoleUser}).
			Return("", assert.AnError)

		_, err := uc.Login(context.Background(), "ada@example.com", "s3cret-pass")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeInternal, appErr.Code)
		auditRepo.AssertNotCalled(t, "Record")
	})

	t.Run("unknown email yields the same unauthenticated error", func(t *testing.T) {
		userRepo, _, _, _, _, uc := newAuthUseCase()
		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, domain.NewNotFound("user not found"))

		_, err := uc.Login(context.Background(), "ghost@example.com", "whatever")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeUnauthenticated, appErr.Code)
	})
}

func TestAuthUseCase_Logout(t *testing.T) {
	_, _, _, _, sessions, uc := newAuthUseCase()
	sessions.On("Revoke", mock.Anything, "token-abc", 24*time.Hour).Return(nil)

	err := uc.Logout(context.Background(), "token-abc")
	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestUserUseCase_CreateUser(t *testing.T) {
	admin := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("failing email lookup surfaces as storage error, not a free email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		passwords := new(MockPasswordService)
		userRepo.On("FindByEmail", mock.Anything, "new@example.com").
			Return(nil, domain.NewStorageFailure("find user", assert.AnError))

		uc := NewUserUseCase(userRepo, new(MockAuditRepository), passwords)
		_, err := uc.CreateUser(context.Background(), admin, "new@example.com", "New", "s3cret-pass", domain.RoleUser)
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeStorageFailure, appErr.Code)
		passwords.AssertNotCalled(t, "Hash")
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestUserUseCase_DeleteUser(t *testing.T) {
	admin := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("deletes and records user_management entry", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		auditRepo := new(MockAuditRepository)
		userRepo.On("Delete", mock.Anything, "user-2").Return(nil)
		auditRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.ActionType == domain.ActionUserManagement && e.PerformedBy == "admin-1"
		})).Return(nil).Once()

		uc := NewUserUseCase(userRepo, auditRepo, new(MockPasswordService))
		require.NoError(t, uc.DeleteUser(context.Background(), admin, "user-2"))
		auditRepo.AssertExpectations(t)
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		uc := NewUserUseCase(new(MockUserRepository), new(MockAuditRepository), new(MockPasswordService))
		err := uc.DeleteUser(context.Background(), admin, "admin-1")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeValidation, appErr.Code)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		uc := NewUserUseCase(new(MockUserRepository), new(MockAuditRepository), new(MockPasswordService))
		err := uc.DeleteUser(context.Background(),
			domain.Principal{ID: "user-1", Role: domain.RoleUser}, "user-2")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.CodeAccessDenied, appErr.Code)
	})
}
