package user_management

import (
	"context"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	apperr "github.com/techpro/techpromanager/domain/error"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

type ListUsersUseCase struct {
	userRepo outbound.UserRepository
}

func NewListUsersUseCase(userRepo outbound.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, req inbound.ListUsersRequest) (*inbound.ListUsersResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = defaultPageLimit
	}
	if req.Limit > maxPageLimit {
		req.Limit = maxPageLimit
	}

	offset := (req.Page - 1) * req.Limit

	filters := outbound.UserFilters{
		Name: req.Filter.Name,
		Role: req.Filter.Role,
	}

	users, total, err := uc.userRepo.FindAll(ctx, offset, req.Limit, filters)
	if err != nil {
		return nil, apperr.ErrInternalServerError("list users", err)
	}

	items := make([]inbound.UserResponse, len(users))
	for i, user := range users {
		items[i] = inbound.NewUserResponse(user)
	}

	return &inbound.ListUsersResponse{
		Users: items,
		Pagination: inbound.PaginationInfo{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
		},
	}, nil
}
