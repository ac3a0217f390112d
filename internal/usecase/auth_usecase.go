package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
)

// AuthUseCase handles registration, login and logout. Successful logins
// are recorded in the audit trail.
type AuthUseCase struct {
	userRepo  ports.UserRepository
	auditRepo ports.AuditRepository
	tokens    ports.TokenService
	passwords ports.PasswordService
	sessions  ports.SessionStore
	tokenTTL  time.Duration
}

func NewAuthUseCase(
	userRepo ports.UserRepository,
	auditRepo ports.AuditRepository,
	tokens ports.TokenService,
	passwords ports.PasswordService,
	sessions ports.SessionStore,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		tokens:    tokens,
		passwords: passwords,
		sessions:  sessions,
		tokenTTL:  tokenTTL,
	}
}

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a regular user account.
func (uc *AuthUseCase) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidation("a valid email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidation("name is required")
	}
	if len(password) < 8 {
		return nil, domain.NewValidation("password must be at least 8 characters")
	}

	switch _, err := uc.userRepo.FindByEmail(ctx, email); {
	case err == nil:
		return nil, domain.NewConflict("email is already registered")
	case !domain.IsCode(err, domain.CodeNotFound):
		return nil, err
	}

	hash, err := uc.passwords.Hash(password)
	if err != nil {
		return nil, domain.NewInternal("hash password", err)
	}

	user := domain.NewUser(email, name, hash, domain.RoleUser)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, issues an access token and records a
// login audit entry.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.NewValidation("email and password are required")
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewUnauthenticated("invalid email or password")
	}
	if err := uc.passwords.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.NewUnauthenticated("invalid email or password")
	}

	token, err := uc.tokens.Generate(user.Principal())
	if err != nil {
		return nil, domain.NewInternal("generate token", err)
	}

	entry := domain.NewAuditEntry(domain.ActionLogin, user.ID, "user logged in: "+user.Email)
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.NewValidation("token is required")
	}
	if err := uc.sessions.Revoke(ctx, token, uc.tokenTTL); err != nil {
		return domain.NewStorageFailure("revoke token", err)
	}
	return nil
}
