package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// SeedAdminInput describes the account created when no admin exists yet.
type SeedAdminInput struct {
	Email    string
	Name     string
	Password string
}

// SeedAdminUseCase creates the first admin account. Accounts are provisioned
// out of band; there is no self registration.
type SeedAdminUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewSeedAdminUseCase creates a new SeedAdminUseCase instance.
func NewSeedAdminUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *SeedAdminUseCase {
	return &SeedAdminUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute creates the admin when configured and none exists. It returns the
// created user, or nil when nothing was done.
func (uc *SeedAdminUseCase) Execute(ctx context.Context, input SeedAdminInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, nil
	}

	admins, err := uc.userRepo.FindByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) > 0 {
		return nil, nil
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		slog.Warn("Admin seed skipped, email already used by another account", "email", email)
		return nil, nil
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Administrator"
	}

	user := entity.NewUser(email, name, hash, entity.RoleAdmin)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("Admin account created", "user_id", user.ID, "email", email)
	return user, nil
}
