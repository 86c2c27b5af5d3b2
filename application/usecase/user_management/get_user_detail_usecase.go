package user_management

import (
	"context"
	"errors"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	apperr "github.com/techpro/techpromanager/domain/error"
)

type GetUserDetailUseCase struct {
	userRepo outbound.UserRepository
}

func NewGetUserDetailUseCase(userRepo outbound.UserRepository) *GetUserDetailUseCase {
	return &GetUserDetailUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the user if the actor is an admin or the user themself
func (uc *GetUserDetailUseCase) Execute(ctx context.Context, actor inbound.Actor, userID string) (*inbound.UserResponse, error) {
	if userID == "" {
		return nil, apperr.ErrMissingField("id")
	}
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, apperr.ErrForbidden("user", userID)
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperr.ErrUserNotFound(userID)
		}
		return nil, apperr.ErrInternalServerError("find user", err)
	}

	resp := inbound.NewUserResponse(user)
	return &resp, nil
}
