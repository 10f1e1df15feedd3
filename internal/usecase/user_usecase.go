package usecase

import (
	"context"

	"roomfoodfinder/internal/domain/entity"
	"roomfoodfinder/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitized(user), nil
}

type UpdateProfileInput struct {
	Name string
}

// UpdateProfile lets a user edit their own display name. Email and role are
// immutable here; role changes go through the admin use case only.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitized(user), nil
}
