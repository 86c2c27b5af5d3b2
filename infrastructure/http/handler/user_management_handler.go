package handler

import (
	"net/http"
	"strconv"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/infrastructure/http/response"
)

type UserManagementHandler struct {
	userManagementUseCase inbound.UserManagementUseCase
}

func NewUserManagementHandler(userManagementUseCase inbound.UserManagementUseCase) *UserManagementHandler {
	return &UserManagementHandler{
		userManagementUseCase: userManagementUseCase,
	}
}

// CreateUser lets an admin create an account with an explicit role
func (h *UserManagementHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.userManagementUseCase.CreateUser(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

// ListUsers supports ?page=&limit=&name=&role=
func (h *UserManagementHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	req := inbound.ListUsersRequest{
		Page:  page,
		Limit: limit,
		Filter: inbound.ListUsersFilter{
			Name: query.Get("name"),
			Role: query.Get("role"),
		},
	}

	res, err := h.userManagementUseCase.ListUsers(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", res)
}

func (h *UserManagementHandler) GetUserDetail(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.userManagementUseCase.GetUserDetail(r.Context(), caller, id)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", user)
}

func (h *UserManagementHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	var req inbound.UpdateRoleRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.userManagementUseCase.UpdateUserRole(r.Context(), id, req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User role updated successfully", user)
}
