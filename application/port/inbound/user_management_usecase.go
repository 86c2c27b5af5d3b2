package inbound

import (
	"context"

	"github.com/techpro/techpromanager/domain/entity"
)

// Create User
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
}

// Update Role
type UpdateRoleRequest struct {
	Role entity.Role `json:"role"`
}

// List Users
type ListUsersRequest struct {
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Filter ListUsersFilter `json:"filter"`
}

type ListUsersFilter struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

type PaginationInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// User Management Use Case Interface
type UserManagementUseCase interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetUserDetail(ctx context.Context, actor Actor, userID string) (*UserResponse, error)
	ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	UpdateUserRole(ctx context.Context, userID string, req UpdateRoleRequest) (*UserResponse, error)
}
