package user_management

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/application/port/outbound/mocks"
	"github.com/techpro/techpromanager/domain/entity"
	apperr "github.com/techpro/techpromanager/domain/error"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		passwords := new(mocks.MockPasswordService)
		uc := NewUserManagementUseCase(users, passwords)

		users.On("ExistsByEmail", ctx, "root@x.com").Return(false, nil)
		passwords.On("HashPassword", "rootpass").Return("s:k", nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Role == entity.RoleAdmin
		})).Return(nil)

		resp, err := uc.CreateUser(ctx, inbound.CreateUserRequest{
			Name: "Root", Email: "root@x.com", Password: "rootpass", Role: entity.RoleAdmin,
		})

		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		uc := NewUserManagementUseCase(new(mocks.MockUserRepository), new(mocks.MockPasswordService))

		_, err := uc.CreateUser(ctx, inbound.CreateUserRequest{
			Name: "Root", Email: "root@x.com", Password: "rootpass", Role: "superadmin",
		})

		assert.Equal(t, 400, apperr.HTTPStatus(err))
	})

	t.Run("Duplicate", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		uc := NewUserManagementUseCase(users, new(mocks.MockPasswordService))
		users.On("ExistsByEmail", ctx, "root@x.com").Return(true, nil)

		_, err := uc.CreateUser(ctx, inbound.CreateUserRequest{
			Name: "Root", Email: "root@x.com", Password: "rootpass", Role: entity.RoleAdmin,
		})

		assert.Equal(t, 409, apperr.HTTPStatus(err))
	})
}

func TestGetUserDetail(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	uc := NewUserManagementUseCase(users, new(mocks.MockPasswordService))
	user := entity.NewMember("Alice", "a@x.com", "s:k")
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("FindByID", ctx, "missing").Return(nil, outbound.ErrUserNotFound)

	self := inbound.Actor{UserID: user.ID, Role: entity.RoleMember}
	admin := inbound.Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	stranger := inbound.Actor{UserID: "someone", Role: entity.RoleMember}

	_, err := uc.GetUserDetail(ctx, self, user.ID)
	assert.NoError(t, err)

	_, err = uc.GetUserDetail(ctx, admin, user.ID)
	assert.NoError(t, err)

	_, err = uc.GetUserDetail(ctx, stranger, user.ID)
	assert.Equal(t, 403, apperr.HTTPStatus(err))

	_, err = uc.GetUserDetail(ctx, admin, "missing")
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}

func TestListUsers_Pagination(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	uc := NewUserManagementUseCase(users, new(mocks.MockPasswordService))

	list := []*entity.User{entity.NewMember("A", "a@x.com", "s:k")}
	users.On("FindAll", ctx, 0, defaultPageLimit, outbound.UserFilters{}).Return(list, 1, nil)
	users.On("FindAll", ctx, 100, maxPageLimit, outbound.UserFilters{Role: "admin"}).Return([]*entity.User{}, 1, nil)

	resp, err := uc.ListUsers(ctx, inbound.ListUsersRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Users, 1)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 1, resp.Pagination.Total)

	resp, err = uc.ListUsers(ctx, inbound.ListUsersRequest{Page: 2, Limit: 500, Filter: inbound.ListUsersFilter{Role: "admin"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Users)
	assert.Equal(t, maxPageLimit, resp.Pagination.Limit)
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	uc := NewUserManagementUseCase(users, new(mocks.MockPasswordService))
	user := entity.NewMember("Alice", "a@x.com", "s:k")
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("Update", ctx, user).Return(nil)

	resp, err := uc.UpdateUserRole(ctx, user.ID, inbound.UpdateRoleRequest{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	_, err = uc.UpdateUserRole(ctx, user.ID, inbound.UpdateRoleRequest{Role: "owner"})
	assert.Equal(t, 400, apperr.HTTPStatus(err))
}
