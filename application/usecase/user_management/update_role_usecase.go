package user_management

import (
	"context"
	"errors"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	apperr "github.com/techpro/techpromanager/domain/error"
)

type UpdateRoleUseCase struct {
	userRepo outbound.UserRepository
}

func NewUpdateRoleUseCase(userRepo outbound.UserRepository) *UpdateRoleUseCase {
	return &UpdateRoleUseCase{
		userRepo: userRepo,
	}
}

// Execute changes a user's role. Tokens already issued keep the old role until they expire.
func (uc *UpdateRoleUseCase) Execute(ctx context.Context, userID string, req inbound.UpdateRoleRequest) (*inbound.UserResponse, error) {
	if !req.Role.IsValid() {
		return nil, apperr.ErrInvalidRequest("role must be admin or member")
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperr.ErrUserNotFound(userID)
		}
		return nil, apperr.ErrInternalServerError("find user", err)
	}

	if user.Role != req.Role {
		user.ChangeRole(req.Role)
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, apperr.ErrInternalServerError("update user", err)
		}
	}

	resp := inbound.NewUserResponse(user)
	return &resp, nil
}
