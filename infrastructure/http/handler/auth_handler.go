package handler

import (
	"net/http"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/infrastructure/http/response"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
}

func NewAuthHandler(authUseCase inbound.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

// Login answers unknown email and wrong password with the same body; the use
// case already collapses both into InvalidCredentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", res)
}

// Logout is stateless: tokens are not revoked, the client drops its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	user, err := h.authUseCase.Me(r.Context(), caller.UserID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var req inbound.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.authUseCase.ChangePassword(r.Context(), caller.UserID, req); err != nil {
		response.AppError(w, err)
		return
	}

	response.NoContent(w)
}
