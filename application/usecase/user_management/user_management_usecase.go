package user_management

import (
	"context"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
)

type UserManagementUseCaseImpl struct {
	createUserUseCase    *CreateUserUseCase
	updateRoleUseCase    *UpdateRoleUseCase
	getUserDetailUseCase *GetUserDetailUseCase
	listUsersUseCase     *ListUsersUseCase
}

func NewUserManagementUseCase(
	userRepo outbound.UserRepository,
	passwordSvc outbound.PasswordService,
) inbound.UserManagementUseCase {
	return &UserManagementUseCaseImpl{
		createUserUseCase:    NewCreateUserUseCase(userRepo, passwordSvc),
		updateRoleUseCase:    NewUpdateRoleUseCase(userRepo),
		getUserDetailUseCase: NewGetUserDetailUseCase(userRepo),
		listUsersUseCase:     NewListUsersUseCase(userRepo),
	}
}

func (uc *UserManagementUseCaseImpl) CreateUser(ctx context.Context, req inbound.CreateUserRequest) (*inbound.UserResponse, error) {
	return uc.createUserUseCase.Execute(ctx, req)
}

func (uc *UserManagementUseCaseImpl) GetUserDetail(ctx context.Context, actor inbound.Actor, userID string) (*inbound.UserResponse, error) {
	return uc.getUserDetailUseCase.Execute(ctx, actor, userID)
}

func (uc *UserManagementUseCaseImpl) ListUsers(ctx context.Context, req inbound.ListUsersRequest) (*inbound.ListUsersResponse, error) {
	return uc.listUsersUseCase.Execute(ctx, req)
}

func (uc *UserManagementUseCaseImpl) UpdateUserRole(ctx context.Context, userID string, req inbound.UpdateRoleRequest) (*inbound.UserResponse, error) {
	return uc.updateRoleUseCase.Execute(ctx, userID, req)
}
