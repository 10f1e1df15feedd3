package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
	"roomfoodfinder/internal/infrastructure/auth"
	"roomfoodfinder/pkg/errors"
)

const bcryptCost = 10

type AuthUseCase struct {
	userRepo    repository.UserRepository
	jwtManager  *auth.JWTManager
	adminSecret string
}

func NewAuthUseCase(userRepo repository.UserRepository, jwtManager *auth.JWTManager, adminSecret string) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		jwtManager:  jwtManager,
		adminSecret: adminSecret,
	}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	AdminSecret string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role := entity.RoleUser
	if input.Role != "" {
		parsed, ok := entity.ParseRole(input.Role)
		if !ok {
			return nil, errors.BadRequest("Invalid role", nil)
		}
		role = parsed
	}

	// Admin accounts are gated behind a shared secret.
	if role == entity.RoleAdmin && input.AdminSecret != uc.adminSecret {
		return nil, errors.Forbidden("Invalid admin secret. Cannot create admin account.", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	// The unique email index turns a concurrent duplicate into a conflict here.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.jwtManager.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: sanitized(user), Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	token, err := uc.jwtManager.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: sanitized(user), Token: token}, nil
}

// sanitized returns a copy safe to hand to the transport layer.
func sanitized(u *entity.User) *entity.User {
	cp := *u
	cp.PasswordHash = ""
	return &cp
}
