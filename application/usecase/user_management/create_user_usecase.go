package user_management

import (
	"context"
	"errors"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
	apperr "github.com/techpro/techpromanager/domain/error"
	"github.com/techpro/techpromanager/domain/valueobject"
)

// CreateUserUseCase provisions an account with an explicit role. It backs the
// create_admin command; self-service sign-up goes through AuthUseCase.Register.
type CreateUserUseCase struct {
	userRepo    outbound.UserRepository
	passwordSvc outbound.PasswordService
}

func NewCreateUserUseCase(
	userRepo outbound.UserRepository,
	passwordSvc outbound.PasswordService,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, req inbound.CreateUserRequest) (*inbound.UserResponse, error) {
	reg, err := valueobject.NewRegistration(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, apperr.ErrInvalidRequest(err.Error())
	}

	role := req.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !role.IsValid() {
		return nil, apperr.ErrInvalidRequest("role must be admin or member")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, reg.Email())
	if err != nil {
		return nil, apperr.ErrInternalServerError("check email", err)
	}
	if exists {
		return nil, apperr.ErrDuplicateEmail(reg.Email())
	}

	hash, err := uc.passwordSvc.HashPassword(reg.Password())
	if err != nil {
		return nil, apperr.ErrInternalServerError("hash password", err)
	}

	user := entity.NewUser(reg.Name(), reg.Email(), hash, role)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrUserAlreadyExists) {
			return nil, apperr.ErrDuplicateEmail(reg.Email())
		}
		return nil, apperr.ErrInternalServerError("create user", err)
	}

	resp := inbound.NewUserResponse(user)
	return &resp, nil
}
