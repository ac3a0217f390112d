package usecase

import (
	"context"
	"strings"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
)

// UserUseCase is the admin-only user management surface. Mutations are
// recorded as user_management audit entries.
type UserUseCase struct {
	userRepo  ports.UserRepository
	auditRepo ports.AuditRepository
	passwords ports.PasswordService
}

func NewUserUseCase(userRepo ports.UserRepository, auditRepo ports.AuditRepository, passwords ports.PasswordService) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, auditRepo: auditRepo, passwords: passwords}
}

// ListUsers returns one page of users.
func (uc *UserUseCase) ListUsers(ctx context.Context, p domain.Principal, page domain.Page) ([]*domain.User, int, error) {
	if !domain.CanReadAdminSurface(p) {
		return nil, 0, domain.NewAccessDenied("admin access required")
	}
	return uc.userRepo.List(ctx, page)
}

// CreateUser creates an account with the given role.
func (uc *UserUseCase) CreateUser(ctx context.Context, p domain.Principal, email, name, password string, role domain.Role) (*domain.User, error) {
	if !domain.CanReadAdminSurface(p) {
		return nil, domain.NewAccessDenied("admin access required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidation("a valid email is required")
	}
	if len(password) < 8 {
		return nil, domain.NewValidation("password must be at least 8 characters")
	}
	if !role.Valid() {
		return nil, domain.NewValidation("role must be user or admin")
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

	user := domain.NewUser(email, name, hash, role)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	entry := domain.NewAuditEntry(domain.ActionUserManagement, p.ID, "created user: "+user.Email)
	if err := uc.auditRepo.Record(ctx, entry); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (uc *UserUseCase) DeleteUser(ctx context.Context, p domain.Principal, id string) error {
	if !domain.CanReadAdminSurface(p) {
		return domain.NewAccessDenied("admin access required")
	}
	if id == "" {
		return domain.NewValidation("user id is required")
	}
	if id == p.ID {
		return domain.NewValidation("cannot delete your own account")
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := domain.NewAuditEntry(domain.ActionUserManagement, p.ID, "deleted user: "+id)
	return uc.auditRepo.Record(ctx, entry)
}
